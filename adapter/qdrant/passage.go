package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	godprompt "github.com/moby123/the-god-prompt"
)

type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []searchHit `json:"result"`
	Status string      `json:"status"`
}

type searchHit struct {
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func (a *Adapter) SearchPassages(ctx context.Context, collection string, vector godprompt.Vector, limit int) ([]godprompt.Passage, error) {
	body, err := json.Marshal(searchRequest{
		Vector:      []float32(vector),
		Limit:       limit,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling search request: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", a.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("api-key", a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("qdrant search failed with status %d: %s", resp.StatusCode, msg)
	}

	searchResp := searchResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	// Hits come back ordered by descending score. Hits without a text payload
	// are skipped, they cannot contribute to the context block.
	passages := make([]godprompt.Passage, 0, len(searchResp.Result))
	for _, hit := range searchResp.Result {
		text, ok := hit.Payload["text"].(string)
		if !ok {
			continue
		}
		aPassage := godprompt.Passage{
			Content: text,
			Score:   hit.Score,
		}
		passages = append(passages, aPassage.Sanitize())
	}

	return passages, nil
}
