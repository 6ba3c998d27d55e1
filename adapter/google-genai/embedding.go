package googlegenai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	godprompt "github.com/moby123/the-god-prompt"
)

func (a *Adapter) EmbedContent(ctx context.Context, content string) (godprompt.Vector, error) {
	embedResponse, err := a.client.Models.EmbedContent(ctx,
		a.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(content, genai.RoleUser)},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("embed content error: %w", err)
	}
	if len(embedResponse.Embeddings) == 0 {
		return nil, fmt.Errorf("embed content returned no embeddings")
	}
	return embedResponse.Embeddings[0].Values, nil
}
