package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	godprompt "github.com/moby123/the-god-prompt"
)

func (a *Adapter) EmbedContent(ctx context.Context, content string) (godprompt.Vector, error) {
	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(a.embeddingModel),
		Input: []string{content},
	})
	if err != nil {
		return nil, fmt.Errorf("create openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings returned no data")
	}

	embedding := resp.Data[0].Embedding
	if a.dimensions > 0 && len(embedding) != a.dimensions {
		return nil, fmt.Errorf("openai embedding dimension mismatch: expected %d, got %d", a.dimensions, len(embedding))
	}

	return godprompt.Vector(embedding), nil
}
