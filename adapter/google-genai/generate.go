package googlegenai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	godprompt "github.com/moby123/the-god-prompt"
)

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"status": {
			Type: genai.TypeString,
			Enum: []string{
				string(godprompt.VerdictValid),
				string(godprompt.VerdictPartial),
				string(godprompt.VerdictInvalid),
			},
		},
		"justification": {Type: genai.TypeString},
	},
	Required: []string{"status", "justification"},
}

type verdictResponse struct {
	Status        string `json:"status"`
	Justification string `json:"justification"`
}

func (a *Adapter) Answer(ctx context.Context, question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error) {
	if len(passages) == 0 {
		return "", fmt.Errorf("no passages provided")
	}

	prompt := godprompt.AnswerPrompt(question, passages)

	a.logger.Debug("generating answer", zap.String("question", question.Content))

	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.generativeModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(a.temperature),
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: nil, // Disables thinking
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("calling generative model: %v", err)
	}
	if len(resp.Candidates) != 1 {
		return "", fmt.Errorf("got %v candidates, expected 1", len(resp.Candidates))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty answer from generative model")
	}

	return godprompt.Answer(text), nil
}

func (a *Adapter) Validate(ctx context.Context, question godprompt.Question, answer godprompt.Answer, passages []godprompt.Passage) (godprompt.Verdict, error) {
	prompt := godprompt.ValidatePrompt(question, answer, passages)

	resp, err := a.client.Models.GenerateContent(
		ctx,
		a.generativeModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(a.temperature),
			ResponseMIMEType: "application/json",
			ResponseSchema:   verdictSchema,
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: nil, // Disables thinking
			},
		},
	)
	if err != nil {
		return godprompt.Verdict{}, fmt.Errorf("calling generative model: %v", err)
	}
	if len(resp.Candidates) != 1 {
		return godprompt.Verdict{}, fmt.Errorf("got %v candidates, expected 1", len(resp.Candidates))
	}

	structuredResp := verdictResponse{}
	if err := json.Unmarshal([]byte(resp.Text()), &structuredResp); err != nil {
		return godprompt.Verdict{}, fmt.Errorf("unmarshalling verdict: %v", err)
	}

	// The schema constrains status to the canonical markers, but run the reply
	// through the parser anyway so an off-schema reply degrades to UNKNOWN
	// instead of leaking free text into the status field.
	verdict := godprompt.ParseVerdict(fmt.Sprintf("%s: %s", structuredResp.Status, structuredResp.Justification))
	verdict.Raw = resp.Text()

	return verdict, nil
}
