package rest

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	godprompt "github.com/moby123/the-god-prompt"
)

type GodPrompt interface {
	Ask(ctx context.Context, question godprompt.Question, params godprompt.AskParams) (godprompt.Results, error)
}

type Adapter struct {
	godPrompt  GodPrompt
	askTimeout time.Duration
	logger     *zap.Logger
}

type Option func(*Adapter)

// WithAskTimeout bounds one full request, covering retrieval, generation and
// validation for every source.
func WithAskTimeout(timeout time.Duration) Option {
	return func(a *Adapter) {
		a.askTimeout = timeout
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const defaultAskTimeout = 2 * time.Minute

func New(godPrompt GodPrompt, options ...Option) *Adapter {
	a := &Adapter{
		godPrompt:  godPrompt,
		askTimeout: defaultAskTimeout,
		logger:     zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

func (a *Adapter) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /ask", a.Ask)
}
