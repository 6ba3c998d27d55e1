package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	godprompt "github.com/moby123/the-god-prompt"
)

type askRequest struct {
	Question  string `json:"question"`
	Anonymize bool   `json:"anonymize"`
	Age       uint   `json:"age,omitempty"`
	Country   string `json:"country,omitempty"`
	Sex       string `json:"sex,omitempty"`
}

type askResponse struct {
	Results []resultEntry `json:"results"`
}

type resultEntry struct {
	Label    string    `json:"label"`
	Source   string    `json:"source,omitempty"`
	Answer   string    `json:"answer"`
	Verdict  verdict   `json:"verdict"`
	Passages []passage `json:"passages,omitempty"`
}

type verdict struct {
	Status        string `json:"status"`
	Justification string `json:"justification,omitempty"`
}

type passage struct {
	Content string  `json:"content"`
	Score   float32 `json:"score,omitempty"`
}

// Ask a question
// (POST /ask)
func (a *Adapter) Ask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), a.askTimeout)
	defer cancel()

	requestID := uuid.Must(uuid.NewV4())

	apiRequest := askRequest{}
	if err := readRequestJSON(r, &apiRequest); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	question := godprompt.Question{
		Content: apiRequest.Question,
		Persona: godprompt.Persona{
			Age:     apiRequest.Age,
			Country: apiRequest.Country,
			Sex:     godprompt.Sex(apiRequest.Sex),
		},
	}
	if err := question.Validate(); err != nil {
		renderJSONError(w, http.StatusBadRequest, err)
		return
	}

	a.logger.Info("ask request",
		zap.String("request_id", requestID.String()),
		zap.Bool("anonymize", apiRequest.Anonymize),
	)

	results, err := a.godPrompt.Ask(ctx, question, godprompt.AskParams{
		Anonymize: apiRequest.Anonymize,
	})
	if err != nil {
		if errors.Is(err, godprompt.ErrNoResponse) {
			renderJSONError(w, http.StatusBadGateway, err)
			return
		}
		a.logger.Error("ask failed",
			zap.String("request_id", requestID.String()),
			zap.Error(err),
		)
		renderJSONError(w, http.StatusInternalServerError, fmt.Errorf("error answering question: %w", err))
		return
	}

	renderJSON(w, mapResults(results))
}

func mapResults(results godprompt.Results) askResponse {
	apiResponse := askResponse{
		Results: make([]resultEntry, 0, len(results)),
	}
	for _, entry := range results {
		apiResponse.Results = append(apiResponse.Results, mapResultEntry(entry))
	}
	return apiResponse
}

func mapResultEntry(entry godprompt.ResultEntry) resultEntry {
	apiEntry := resultEntry{
		Label:  entry.Label,
		Source: entry.Source,
		Answer: string(entry.Answer),
		Verdict: verdict{
			Status:        string(entry.Verdict.Status),
			Justification: entry.Verdict.Justification,
		},
		Passages: make([]passage, 0, len(entry.Passages)),
	}
	for _, aPassage := range entry.Passages {
		apiEntry.Passages = append(apiEntry.Passages, passage{
			Content: aPassage.Content,
			Score:   aPassage.Score,
		})
	}
	return apiEntry
}
