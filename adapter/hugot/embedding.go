package hugot

import (
	"context"
	"fmt"

	godprompt "github.com/moby123/the-god-prompt"
)

func (a *Adapter) EmbedContent(ctx context.Context, content string) (godprompt.Vector, error) {
	embeddingResult, err := a.embedding.RunPipeline([]string{content})
	if err != nil {
		return nil, err
	}
	if len(embeddingResult.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding pipeline returned no embeddings")
	}
	return embeddingResult.Embeddings[0], nil
}
