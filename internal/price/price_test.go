package price

import (
	"encoding/json"
	"testing"
)

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Price
		wantErr bool
	}{
		{"zero", `"0"`, 0, false},
		{"one", `"1"`, 1_000_000, false},
		{"half", `"0.5"`, 500_000, false},
		{"quarter", `"0.25"`, 250_000, false},
		{"typical price", `"0.123456"`, 123_456, false},
		{"needs padding 1 digit", `"0.1"`, 100_000, false},
		{"needs padding 2 digits", `"0.12"`, 120_000, false},
		{"needs padding 3 digits", `"0.123"`, 123_000, false},
		{"needs truncation", `"0.1234567"`, 123_456, false},
		{"raw number no quotes", `0.25`, 250_000, false},
		{"whole with frac", `"1.5"`, 1_500_000, false},
		{"two whole", `"2.0"`, 2_000_000, false},
		{"small frac", `"0.000001"`, 1, false},
		{"max precision", `"0.999999"`, 999_999, false},
		{"not a number", `"abc"`, 0, true},
		{"empty string", `""`, 0, true},
		{"trailing junk", `"0.5x"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Price
			err := got.UnmarshalJSON([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr = %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSizeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Size
	}{
		{"whole", `"100"`, 100_000_000},
		{"fractional", `"12.5"`, 12_500_000},
		{"raw number", `10`, 10_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Size
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPriceString(t *testing.T) {
	tests := []struct {
		name  string
		price Price
		want  string
	}{
		{"zero", 0, "0"},
		{"whole", 1_000_000, "1"},
		{"half", 500_000, "0.5"},
		{"trailing zeros trimmed", 400_000, "0.4"},
		{"full precision", 123_456, "0.123456"},
		{"above one", 1_250_000, "1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.price.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPriceRoundTrip(t *testing.T) {
	type level struct {
		Price Price `json:"price"`
		Size  Size  `json:"size"`
	}

	input := `{"price": "0.75", "size": "250"}`
	var l level
	if err := json.Unmarshal([]byte(input), &l); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if l.Price != 750_000 {
		t.Errorf("price: got %d, want 750000", l.Price)
	}
	if l.Size != 250_000_000 {
		t.Errorf("size: got %d, want 250000000", l.Size)
	}
}

func BenchmarkPriceUnmarshalJSON(b *testing.B) {
	data := []byte(`"0.123456"`)
	var p Price

	for i := 0; i < b.N; i++ {
		_ = p.UnmarshalJSON(data)
	}
}
