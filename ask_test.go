package godprompt_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	godprompt "github.com/moby123/the-god-prompt"
	"github.com/moby123/the-god-prompt/godprompttest"
)

var testSources = godprompt.ScriptureSources{
	{Name: "Gita", Collection: "gita"},
	{Name: "Bible", Collection: "bible"},
	{Name: "Quran", Collection: "quran"},
}

func testQuestion() godprompt.Question {
	return godprompt.Question{Content: "Is it wrong to lie to protect someone?"}
}

func testRetriever(g *godprompttest.DataGen) *godprompttest.Retriever {
	return &godprompttest.Retriever{
		Passages: map[string][]godprompt.Passage{
			"gita":  g.Passages(5),
			"bible": g.Passages(5),
			"quran": g.Passages(5),
		},
	}
}

func TestAsk(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			testSources,
		)
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Order and labels follow the static source configuration.
	for i, aSource := range testSources {
		assert.Equal(t, aSource.Name, results[i].Source)
		assert.Equal(t, aSource.Name, results[i].Label)
		assert.NotEmpty(t, results[i].Answer)
		assert.Equal(t, godprompt.VerdictValid, results[i].Verdict.Status)
		assert.Len(t, results[i].Passages, 5)
	}
}

func TestAskSourceWithoutPassagesIsExcluded(t *testing.T) {
	t.Parallel()

	var (
		g         = godprompttest.New(123)
		retriever = testRetriever(g)
	)
	retriever.Passages["bible"] = nil

	gp := godprompt.New(
		&godprompttest.Embedder{Vector: g.Vector(8)},
		retriever,
		&godprompttest.GenerativeModel{},
		testSources,
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Gita", results[0].Source)
	assert.Equal(t, "Quran", results[1].Source)
}

func TestAskRetrievalErrorDoesNotAbortSiblings(t *testing.T) {
	t.Parallel()

	var (
		g         = godprompttest.New(123)
		retriever = testRetriever(g)
	)
	retriever.Errs = map[string]error{
		"gita": fmt.Errorf("connection refused"),
	}

	gp := godprompt.New(
		&godprompttest.Embedder{Vector: g.Vector(8)},
		retriever,
		&godprompttest.GenerativeModel{},
		testSources,
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Bible", results[0].Source)
	assert.Equal(t, "Quran", results[1].Source)
}

func TestAskGenerationErrorExcludesSource(t *testing.T) {
	t.Parallel()

	var (
		g         = godprompttest.New(123)
		retriever = testRetriever(g)
		gitaFirst = retriever.Passages["gita"][0].Content
	)

	generative := &godprompttest.GenerativeModel{
		AnswerFunc: func(question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error) {
			if passages[0].Content == gitaFirst {
				return "", fmt.Errorf("quota exceeded")
			}
			return "an answer", nil
		},
	}

	gp := godprompt.New(
		&godprompttest.Embedder{Vector: g.Vector(8)},
		retriever,
		generative,
		testSources,
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Bible", results[0].Source)
	assert.Equal(t, "Quran", results[1].Source)
}

func TestAskValidationFailureDegradesToUnavailableVerdict(t *testing.T) {
	t.Parallel()

	var (
		g          = godprompttest.New(123)
		generative = &godprompttest.GenerativeModel{
			ValidateFunc: func(question godprompt.Question, answer godprompt.Answer, passages []godprompt.Passage) (godprompt.Verdict, error) {
				return godprompt.Verdict{}, fmt.Errorf("model unavailable")
			},
		}
	)

	gp := godprompt.New(
		&godprompttest.Embedder{Vector: g.Vector(8)},
		testRetriever(g),
		generative,
		testSources,
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The answer survives a failed check, only the verdict is marked.
	for _, entry := range results {
		assert.NotEmpty(t, entry.Answer)
		assert.Equal(t, godprompt.VerdictUnavailable, entry.Verdict.Status)
	}
}

func TestAskAllSourcesFailed(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			&godprompttest.Retriever{},
			&godprompttest.GenerativeModel{},
			testSources,
		)
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.ErrorIs(t, err, godprompt.ErrNoResponse)
	assert.Nil(t, results)
}

func TestAskEmbeddingErrorFailsAllSources(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Err: errors.New("api key invalid")},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			testSources,
		)
	)

	_, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.ErrorIs(t, err, godprompt.ErrNoResponse)
}

func TestAskAnonymized(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			testSources,
			godprompt.WithPerm(func(n int) []int {
				// Deterministic reversal standing in for the per-request shuffle.
				perm := make([]int, n)
				for i := range perm {
					perm[i] = n - 1 - i
				}
				return perm
			}),
		)
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{Anonymize: true})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, entry := range results {
		assert.Equal(t, fmt.Sprintf("Response %d", i+1), entry.Label)
		assert.Empty(t, entry.Source)
		assert.NotEmpty(t, entry.Answer)
	}
}

func TestAskCanceledContext(t *testing.T) {
	t.Parallel()

	var (
		g         = godprompttest.New(123)
		retriever = testRetriever(g)
		gp        = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			retriever,
			&godprompttest.GenerativeModel{},
			testSources,
		)
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := gp.Ask(ctx, testQuestion(), godprompt.AskParams{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)

	// No source pipeline starts under an already dead request.
	assert.Empty(t, retriever.Calls())
}

// cancelingRetriever cancels the request as soon as retrieval is reached,
// standing in for a client that disconnects mid-flight.
type cancelingRetriever struct {
	*godprompttest.Retriever
	cancel context.CancelFunc
}

func (r *cancelingRetriever) SearchPassages(ctx context.Context, collection string, vector godprompt.Vector, limit int) ([]godprompt.Passage, error) {
	r.cancel()
	return r.Retriever.SearchPassages(ctx, collection, vector, limit)
}

func TestAskCancellationStopsPipelineBetweenStages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		g           = godprompttest.New(123)
		answerCalls atomic.Int32
		generative  = &godprompttest.GenerativeModel{
			AnswerFunc: func(question godprompt.Question, passages []godprompt.Passage) (godprompt.Answer, error) {
				answerCalls.Add(1)
				return "an answer", nil
			},
		}
	)

	gp := godprompt.New(
		&godprompttest.Embedder{Vector: g.Vector(8)},
		&cancelingRetriever{Retriever: testRetriever(g), cancel: cancel},
		generative,
		testSources,
	)

	_, err := gp.Ask(ctx, testQuestion(), godprompt.AskParams{})
	require.ErrorIs(t, err, godprompt.ErrNoResponse)

	// Retrieval succeeded but the dead context must stop the pipeline before
	// generation, even though the fakes never inspect it themselves.
	assert.Zero(t, answerCalls.Load())
}

func TestAskEmptyQuestion(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			testSources,
		)
	)

	_, err := gp.Ask(context.Background(), godprompt.Question{Content: "   "}, godprompt.AskParams{})
	require.ErrorIs(t, err, godprompt.ErrEmptyQuestion)
}

func TestAskNoSourcesConfigured(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			nil,
		)
	)

	_, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.ErrorIs(t, err, godprompt.ErrNoSources)
}

func TestAskTopKLimitsPassages(t *testing.T) {
	t.Parallel()

	var (
		g  = godprompttest.New(123)
		gp = godprompt.New(
			&godprompttest.Embedder{Vector: g.Vector(8)},
			testRetriever(g),
			&godprompttest.GenerativeModel{},
			testSources,
			godprompt.WithTopK(3),
		)
	)

	results, err := gp.Ask(context.Background(), testQuestion(), godprompt.AskParams{})
	require.NoError(t, err)
	for _, entry := range results {
		assert.Len(t, entry.Passages, 3)
	}
}
