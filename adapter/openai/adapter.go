package openai

import (
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type Adapter struct {
	client          *openai.Client
	embeddingModel  string
	generativeModel string
	dimensions      int
	temperature     float32
	logger          *zap.Logger
}

type Option func(*Adapter)

func WithEmbeddingModel(model string) Option {
	return func(a *Adapter) {
		a.embeddingModel = model
	}
}

func WithGenerativeModel(model string) Option {
	return func(a *Adapter) {
		a.generativeModel = model
	}
}

// WithDimensions sets the expected embedding vector length. A response with a
// different length is rejected rather than passed on to the vector store.
func WithDimensions(dimensions int) Option {
	return func(a *Adapter) {
		a.dimensions = dimensions
	}
}

func WithTemperature(temperature float32) Option {
	return func(a *Adapter) {
		a.temperature = temperature
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	defaultEmbeddingModel  = string(openai.SmallEmbedding3)
	defaultGenerativeModel = openai.GPT4oMini
	defaultDimensions      = 1536
	defaultTemperature     = 0.2
)

func New(client *openai.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:          client,
		embeddingModel:  defaultEmbeddingModel,
		generativeModel: defaultGenerativeModel,
		dimensions:      defaultDimensions,
		temperature:     defaultTemperature,
		logger:          zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"embedding model", a.embeddingModel,
		"generative model", a.generativeModel,
		"dimensions", a.dimensions,
		"temperature", a.temperature,
	).Info("init openai adapter")

	return a
}

const adapterName = "openai"

func (a *Adapter) Name() string {
	return adapterName
}
