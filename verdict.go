package godprompt

import (
	"strings"
)

type VerdictStatus string

const (
	// VerdictValid means the answer is relevant, respectful and supported by the passages.
	VerdictValid VerdictStatus = "VALID"
	// VerdictPartial means the answer is relevant but not fully supported by the passages.
	VerdictPartial VerdictStatus = "PARTIAL"
	// VerdictInvalid means the answer is off-topic, disrespectful or contradicts the passages.
	VerdictInvalid VerdictStatus = "INVALID"
	// VerdictUnavailable is a sentinel used when the validation pass itself failed.
	// The answer is still surfaced, only the check is missing.
	VerdictUnavailable VerdictStatus = "UNAVAILABLE"
	// VerdictUnknown means the model reply did not start with a canonical marker.
	VerdictUnknown VerdictStatus = "UNKNOWN"
)

// Verdict is the output of the faithfulness checking pass, judging an answer
// against the passages it was generated from.
type Verdict struct {
	Status        VerdictStatus `json:"status"`
	Justification string        `json:"justification,omitempty"`
	// Raw keeps the unparsed model reply for display and debugging.
	Raw string `json:"-"`
}

func UnavailableVerdict() Verdict {
	return Verdict{Status: VerdictUnavailable}
}

// ParseVerdict maps a model reply onto the canonical verdict taxonomy. The
// validation prompt instructs the model to start its reply with one of the
// markers followed by a justification clause. Replies without a recognisable
// marker are kept with status UNKNOWN rather than dropped.
func ParseVerdict(raw string) Verdict {
	verdict := Verdict{Raw: raw}

	reply := strings.TrimSpace(raw)
	upper := strings.ToUpper(reply)

	for _, status := range []VerdictStatus{VerdictValid, VerdictPartial, VerdictInvalid} {
		if !strings.HasPrefix(upper, string(status)) {
			continue
		}
		verdict.Status = status
		verdict.Justification = strings.TrimLeft(reply[len(status):], " \t:.-–")
		return verdict
	}

	verdict.Status = VerdictUnknown
	verdict.Justification = reply
	return verdict
}
