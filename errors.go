package godprompt

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestion = errors.New("question content is empty")
	ErrNoSources     = errors.New("no scripture sources configured")
	// ErrNoPassages signals that retrieval returned zero passages for a source.
	// The source is excluded from the response, it is never answered with an
	// empty context.
	ErrNoPassages = errors.New("no matching passages")
	// ErrNoResponse signals that every configured source failed, so there is
	// nothing to deliver. Distinct from an empty but successful response.
	ErrNoResponse = errors.New("no response could be generated")
)

type Stage string

const (
	StageRetrieval  Stage = "retrieval"
	StageGeneration Stage = "generation"
	StageValidation Stage = "validation"
)

// SourceError records why a single scripture source failed. It is logged and
// converted into exclusion at the orchestrator level, never allowed to abort
// sibling sources.
type SourceError struct {
	Source string
	Stage  Stage
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %s: %v", e.Source, e.Stage, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
