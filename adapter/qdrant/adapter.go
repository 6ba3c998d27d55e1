package qdrant

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Adapter talks to a Qdrant deployment over its REST API. There is no
// well-established Qdrant client in our stack, the search surface we need is a
// single endpoint, so a plain HTTP client is enough.
type Adapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

type Option func(*Adapter)

func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = client
	}
}

func WithAPIKey(apiKey string) Option {
	return func(a *Adapter) {
		a.apiKey = apiKey
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const defaultHTTPTimeout = 30 * time.Second

func New(baseURL string, options ...Option) *Adapter {
	a := &Adapter{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

const adapterName = "qdrant"

func (a *Adapter) Name() string {
	return adapterName
}
