// Package price handles price and size values from prediction market APIs
// without losing precision.
package price

import (
	"encoding/json"
	"fmt"
	"strings"
)

const Scale int64 = 1_000_000

// Price is a fixed-point value scaled by Scale (1.0 == 1_000_000).
type Price int64

// Size is a fixed-point quantity scaled by Scale.
type Size int64

var (
	_ json.Unmarshaler = (*Price)(nil)
	_ json.Unmarshaler = (*Size)(nil)
)

func (p *Price) UnmarshalJSON(data []byte) error {
	v, err := parseScaled(data)
	if err != nil {
		return fmt.Errorf("couldn't parse price: %w", err)
	}
	*p = Price(v)
	return nil
}

func (s *Size) UnmarshalJSON(data []byte) error {
	v, err := parseScaled(data)
	if err != nil {
		return fmt.Errorf("couldn't parse size: %w", err)
	}
	*s = Size(v)
	return nil
}

func (p Price) String() string { return formatScaled(int64(p)) }
func (s Size) String() string  { return formatScaled(int64(s)) }

// parseScaled accepts both quoted ("0.5") and raw (0.5) decimal values.
// Fractional digits beyond the supported precision are truncated.
func parseScaled(data []byte) (int64, error) {
	if len(data) > 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	// Else we assume that it is a raw number.

	if len(data) == 0 {
		return 0, fmt.Errorf("empty value")
	}

	var res int64
	i := 0

	for i < len(data) && data[i] != '.' {
		if data[i] < '0' || data[i] > '9' {
			return 0, fmt.Errorf("unexpected character %q in %q", data[i], data)
		}
		res = res*10 + int64(data[i]-'0')*Scale
		i++
	}

	if i < len(data) && data[i] == '.' {
		i++
		mult := Scale
		for i < len(data) {
			if data[i] < '0' || data[i] > '9' {
				return 0, fmt.Errorf("unexpected character %q in %q", data[i], data)
			}
			mult /= 10
			if mult >= 1 {
				res += int64(data[i]-'0') * mult
			}
			i++
		}
	}

	return res, nil
}

func formatScaled(v int64) string {
	whole := v / Scale
	frac := v % Scale
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	return fmt.Sprintf("%d.%s", whole, strings.TrimRight(fmt.Sprintf("%06d", frac), "0"))
}
