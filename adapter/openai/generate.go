package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	godprompt "github.com/moby123/the-god-prompt"
)

func (a *Adapter) Answer(ctx context.Context, question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error) {
	if len(passages) == 0 {
		return "", fmt.Errorf("no passages provided")
	}

	a.logger.Debug("generating answer", zap.String("question", question.Content))

	text, err := a.complete(ctx, godprompt.AnswerPrompt(question, passages))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("empty answer from chat completion")
	}

	return godprompt.Answer(text), nil
}

func (a *Adapter) Validate(ctx context.Context, question godprompt.Question, answer godprompt.Answer, passages []godprompt.Passage) (godprompt.Verdict, error) {
	text, err := a.complete(ctx, godprompt.ValidatePrompt(question, answer, passages))
	if err != nil {
		return godprompt.Verdict{}, err
	}

	return godprompt.ParseVerdict(text), nil
}

func (a *Adapter) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.generativeModel,
		Temperature: a.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
