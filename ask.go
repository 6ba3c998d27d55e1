package godprompt

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type AskParams struct {
	// Anonymize shuffles which scripture produced which answer and replaces
	// source names with positional labels before presentation.
	Anonymize bool
}

// sourceOutcome is the terminal state of one source's pipeline, either a
// completed entry or a recorded failure.
type sourceOutcome struct {
	entry *ResultEntry
	err   *SourceError
}

// Ask runs the retrieve, generate, validate pipeline for every configured
// scripture source and aggregates the outcomes. Sources are processed
// concurrently, one worker each, but outcomes land in indexed slots so the
// aggregated order always follows the source configuration regardless of
// completion order. A failure in one source never aborts its siblings.
func (gp *godPrompt) Ask(ctx context.Context, question Question, params AskParams) (Results, error) {
	if err := question.Validate(); err != nil {
		return nil, err
	}
	if err := gp.sources.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gp.logger.Info("received question",
		zap.String("question", question.Content),
		zap.Int("sources", len(gp.sources)),
		zap.Bool("anonymize", params.Anonymize),
	)

	var (
		outcomes = make([]sourceOutcome, len(gp.sources))
		wg       = new(sync.WaitGroup)
	)
	for i, aSource := range gp.sources {
		wg.Go(func() {
			outcomes[i] = gp.askSource(ctx, aSource, question)
		})
	}
	wg.Wait()

	results := make(Results, 0, len(gp.sources))
	for _, outcome := range outcomes {
		if outcome.err != nil {
			gp.logger.Warn("source failed",
				zap.String("source", outcome.err.Source),
				zap.String("stage", string(outcome.err.Stage)),
				zap.Error(outcome.err.Err),
			)
			continue
		}
		results = append(results, *outcome.entry)
	}

	if len(results) == 0 {
		return nil, ErrNoResponse
	}

	if params.Anonymize {
		return results.Anonymized(gp.perm), nil
	}
	return results.Labeled(), nil
}

func (gp *godPrompt) askSource(ctx context.Context, source ScriptureSource, question Question) sourceOutcome {
	ctx, cancel := context.WithTimeout(ctx, gp.sourceTimeout)
	defer cancel()

	failed := func(stage Stage, err error) sourceOutcome {
		return sourceOutcome{err: &SourceError{Source: source.Name, Stage: stage, Err: err}}
	}

	vector, err := gp.embedder.EmbedContent(ctx, question.Content)
	if err != nil {
		return failed(StageRetrieval, fmt.Errorf("embedding question: %w", err))
	}

	passages, err := gp.retriever.SearchPassages(ctx, source.Collection, vector, gp.topK)
	if err != nil {
		return failed(StageRetrieval, fmt.Errorf("searching passages: %w", err))
	}
	if len(passages) == 0 {
		return failed(StageRetrieval, ErrNoPassages)
	}

	gp.logger.Debug("found passages",
		zap.String("source", source.Name),
		zap.Int("passages", len(passages)),
	)

	// Collaborators may be slow to notice a dead context, do not start the
	// next stage once the request is canceled or timed out.
	if err := ctx.Err(); err != nil {
		return failed(StageGeneration, err)
	}

	answer, err := gp.generative.Answer(ctx, question, passages)
	if err != nil {
		return failed(StageGeneration, fmt.Errorf("calling generative model: %w", err))
	}

	entry := &ResultEntry{
		Source:   source.Name,
		Answer:   answer,
		Passages: passages,
	}

	// A failed check is degraded to an unavailable verdict rather than
	// dropping the source, the answer itself is still useful to the user.
	verdict, err := gp.generative.Validate(ctx, question, answer, passages)
	if err != nil {
		gp.logger.Warn("validation unavailable",
			zap.String("source", source.Name),
			zap.Error(err),
		)
		entry.Verdict = UnavailableVerdict()
		return sourceOutcome{entry: entry}
	}

	entry.Verdict = verdict
	return sourceOutcome{entry: entry}
}
