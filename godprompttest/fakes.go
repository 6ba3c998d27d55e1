package godprompttest

import (
	"context"
	"fmt"
	"sync"

	godprompt "github.com/moby123/the-god-prompt"
)

// Embedder is a configurable fake implementing godprompt.Embedder.
type Embedder struct {
	Vector godprompt.Vector
	Err    error
}

func (e *Embedder) Name() string {
	return "fake-embedder"
}

func (e *Embedder) EmbedContent(ctx context.Context, content string) (godprompt.Vector, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Vector, nil
}

// Retriever is a configurable fake implementing godprompt.Retriever. Passages
// are keyed by collection; a missing key yields zero passages, mimicking a
// collection with no relevant content.
type Retriever struct {
	Passages map[string][]godprompt.Passage
	Errs     map[string]error

	mu    sync.Mutex
	calls []string
}

func (r *Retriever) Name() string {
	return "fake-retriever"
}

// Calls returns the collections searched so far. Sources are processed
// concurrently, so the order is not deterministic.
func (r *Retriever) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *Retriever) SearchPassages(ctx context.Context, collection string, vector godprompt.Vector, limit int) ([]godprompt.Passage, error) {
	r.mu.Lock()
	r.calls = append(r.calls, collection)
	r.mu.Unlock()
	if err := r.Errs[collection]; err != nil {
		return nil, err
	}
	passages := r.Passages[collection]
	if limit < len(passages) {
		passages = passages[:limit]
	}
	return passages, nil
}

// GenerativeModel is a configurable fake implementing godprompt.GenerativeModel.
type GenerativeModel struct {
	AnswerFunc   func(question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error)
	ValidateFunc func(question godprompt.Question, answer godprompt.Answer, passages []godprompt.Passage) (godprompt.Verdict, error)
}

func (g *GenerativeModel) Answer(ctx context.Context, question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error) {
	if g.AnswerFunc != nil {
		return g.AnswerFunc(question, passages)
	}
	return godprompt.Answer(fmt.Sprintf("answer to %q from %d passages", question.Content, len(passages))), nil
}

func (g *GenerativeModel) Validate(ctx context.Context, question godprompt.Question, answer godprompt.Answer, passages []godprompt.Passage) (godprompt.Verdict, error) {
	if g.ValidateFunc != nil {
		return g.ValidateFunc(question, answer, passages)
	}
	return godprompt.Verdict{Status: godprompt.VerdictValid, Justification: "supported by the passages"}, nil
}
