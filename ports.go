package godprompt

import (
	"context"
)

// Embedder encodes a question as a vector in the same space as the stored passages.
type Embedder interface {
	Name() string
	EmbedContent(ctx context.Context, content string) (Vector, error)
}

// Retriever returns the stored passages closest in vector space to the embedded
// question, ordered by descending similarity.
type Retriever interface {
	Name() string
	SearchPassages(ctx context.Context, collection string, vector Vector, limit int) ([]Passage, error)
}

// GenerativeModel uses generative AI for the two chat passes: answering a question
// from retrieved passages and judging the faithfulness of that answer.
type GenerativeModel interface {
	Answer(ctx context.Context, question Question, passages []Passage) (Answer, error)
	Validate(ctx context.Context, question Question, answer Answer, passages []Passage) (Verdict, error)
}
