package godprompt

import (
	"fmt"
)

// Answer is the free text produced by the generative model for one scripture.
// It is never cached, a fresh answer is generated on every request.
type Answer string

// ResultEntry holds the outcome of the full pipeline for one scripture source.
// Label is what the presentation layer shows: either the source name, or a
// positional placeholder when the response set has been anonymised.
type ResultEntry struct {
	Source   string    `json:"source,omitempty"`
	Label    string    `json:"label"`
	Answer   Answer    `json:"answer"`
	Verdict  Verdict   `json:"verdict"`
	Passages []Passage `json:"passages,omitempty"`
}

// Results is the full response for one question, ordered by the static source
// configuration. Nothing in it outlives the request.
type Results []ResultEntry

// Labeled returns results labeled with their real source names, order and
// identity stable and reproducible.
func (r Results) Labeled() Results {
	labeled := make(Results, len(r))
	for i := range r {
		labeled[i] = r[i]
		labeled[i].Label = r[i].Source
	}
	return labeled
}

// Anonymized returns the results in a permuted order with positional labels
// "Response 1..N". The source names are discarded so the source to answer
// association cannot be recovered from the labels. The permutation is drawn
// fresh for every call and never persisted.
func (r Results) Anonymized(perm func(n int) []int) Results {
	anonymized := make(Results, len(r))
	for i, j := range perm(len(r)) {
		anonymized[i] = r[j]
		anonymized[i].Source = ""
		anonymized[i].Label = fmt.Sprintf("Response %d", i+1)
	}
	return anonymized
}
