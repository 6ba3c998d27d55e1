package godprompt

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTopK          = 5
	defaultSourceTimeout = 60 * time.Second
)

type godPrompt struct {
	embedder      Embedder
	retriever     Retriever
	generative    GenerativeModel
	sources       ScriptureSources
	topK          int
	sourceTimeout time.Duration
	perm          func(n int) []int
	logger        *zap.Logger
}

type Option func(*godPrompt)

func WithTopK(topK int) Option {
	return func(gp *godPrompt) {
		gp.topK = topK
	}
}

// WithSourceTimeout bounds the whole retrieve/generate/validate pipeline for a
// single source. Each source multiplies three network bound calls, so a slow
// collaborator must not stall the whole request forever.
func WithSourceTimeout(timeout time.Duration) Option {
	return func(gp *godPrompt) {
		gp.sourceTimeout = timeout
	}
}

// WithPerm replaces the permutation source used for anonymised labels. Tests
// inject a deterministic one.
func WithPerm(perm func(n int) []int) Option {
	return func(gp *godPrompt) {
		gp.perm = perm
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(gp *godPrompt) {
		gp.logger = logger
	}
}

func New(embedder Embedder, retriever Retriever, gm GenerativeModel, sources ScriptureSources, options ...Option) *godPrompt {
	gp := &godPrompt{
		embedder:      embedder,
		retriever:     retriever,
		generative:    gm,
		sources:       sources,
		topK:          defaultTopK,
		sourceTimeout: defaultSourceTimeout,
		perm:          freshPerm,
		logger:        zap.NewNop(),
	}

	for _, o := range options {
		o(gp)
	}

	return gp
}

// freshPerm draws a permutation from a newly seeded source on every call, so
// label assignments are independent across requests and a stale permutation is
// never reused for a later question.
func freshPerm(n int) []int {
	return rand.New(rand.NewSource(time.Now().UnixNano())).Perm(n)
}
