package weaviate

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
	"go.uber.org/zap"
)

type Adapter struct {
	client      *weaviate.Client
	collections []string
	logger      *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New creates the adapter and makes sure a class exists for every configured
// scripture collection. Vectors are stored as supplied, weaviate does not
// vectorize anything itself.
func New(ctx context.Context, client *weaviate.Client, collections []string, options ...Option) (*Adapter, error) {
	a := &Adapter{
		client:      client,
		collections: collections,
		logger:      zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a, a.init(ctx)
}

const adapterName = "weaviate"

func (a *Adapter) Name() string {
	return adapterName
}

func (a *Adapter) init(ctx context.Context) error {
	for _, collection := range a.collections {
		cls := &models.Class{
			Class:      className(collection),
			Vectorizer: "none",
		}
		exists, err := a.client.Schema().ClassExistenceChecker().WithClassName(cls.Class).Do(ctx)
		if err != nil {
			return fmt.Errorf("weaviate error: %w", err)
		}
		if exists {
			continue
		}
		if err := a.client.Schema().ClassCreator().WithClass(cls).Do(ctx); err != nil {
			return fmt.Errorf("weaviate error: %w", err)
		}
		a.logger.Info("created weaviate class", zap.String("class", cls.Class))
	}

	return nil
}

// className maps a collection identifier to a weaviate class name, which must
// start with an upper case letter.
func className(collection string) string {
	if collection == "" {
		return ""
	}
	return strings.ToUpper(collection[:1]) + collection[1:]
}
