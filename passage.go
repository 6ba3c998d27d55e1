package godprompt

import (
	"strings"
)

type Vector []float32

// Passage is a contiguous span of scripture text stored with an embedding for
// similarity retrieval. Score is the similarity reported by the vector store,
// passages with higher scores come first.
type Passage struct {
	Content string  `json:"content"`
	Score   float32 `json:"score,omitempty"`
}

func (p Passage) Sanitize() Passage {
	p.Content = strings.TrimSpace(p.Content)
	p.Content = strings.Join(strings.Fields(p.Content), " ")
	return p
}

// JoinPassages concatenates passage contents into a single context block,
// order preserved.
func JoinPassages(passages []Passage) string {
	contents := make([]string, 0, len(passages))
	for _, aPassage := range passages {
		contents = append(contents, aPassage.Content)
	}
	return strings.Join(contents, "\n\n")
}
