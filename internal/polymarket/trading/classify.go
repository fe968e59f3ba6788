package trading

import "strings"

// Outcome classifies an error from the authenticated submission path.
// The exchange reports everything as message text, so classification is
// substring matching; keeping the lists here means a format change only
// touches this file.
type Outcome int

const (
	// OutcomeAuthFailure means the exchange rejected the credentials.
	OutcomeAuthFailure Outcome = iota
	// OutcomeOrderRejected means authentication succeeded and the
	// exchange rejected the order content, which is the expected result
	// of a diagnostic submission.
	OutcomeOrderRejected
	// OutcomeUnknown means the error text matched no known pattern.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthFailure:
		return "auth failure"
	case OutcomeOrderRejected:
		return "order rejected"
	default:
		return "unknown"
	}
}

var authIndicators = []string{
	"unauthorized",
	"invalid api key",
	"api key not found",
	"invalid credentials",
	"could not authenticate",
}

var rejectionIndicators = []string{
	"invalid token",
	"token id",
	"not found",
	"invalid order",
	"order validation",
	"invalid amount",
	"insufficient",
	"balance",
	"allowance",
	"min size",
	"tick size",
}

// Classify maps an error from CreateOrDeriveAPIKey or PlaceOrder to an
// Outcome. Auth indicators win over rejection indicators because an auth
// failure makes any further text meaningless.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeUnknown
	}
	text := strings.ToLower(err.Error())

	for _, indicator := range authIndicators {
		if strings.Contains(text, indicator) {
			return OutcomeAuthFailure
		}
	}
	for _, indicator := range rejectionIndicators {
		if strings.Contains(text, indicator) {
			return OutcomeOrderRejected
		}
	}
	return OutcomeUnknown
}
