//go:build integration

package redis

import (
	"fmt"
	"math/rand/v2"

	godprompt "github.com/moby123/the-god-prompt"
)

func (s *RedisTestSuite) TestSearchPassages() {
	ctx, cancel := testContext()
	defer cancel()

	var (
		gitaPassages = []godprompt.Passage{
			{Content: "You have a right to perform your duty."},
			{Content: "Set thy heart upon thy work."},
		}
		biblePassages = []godprompt.Passage{
			{Content: "Love thy neighbour as thyself."},
		}
		gitaVectors = []godprompt.Vector{
			testVector(testVectorDim, 0, 2),
			testVector(testVectorDim, 0, 100),
		}
		bibleVectors = []godprompt.Vector{
			testVector(testVectorDim, 0, 2),
		}
		searchVector = testVector(testVectorDim, 0, 2)
	)

	s.Require().NoError(s.adapter.SavePassages(ctx, "gita", gitaPassages, gitaVectors))
	s.Require().NoError(s.adapter.SavePassages(ctx, "bible", biblePassages, bibleVectors))

	// Only passages tagged with the requested collection come back.
	results, err := s.adapter.SearchPassages(ctx, "gita", searchVector, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(gitaPassages[0].Content, results[0].Content)
	s.Equal(gitaPassages[1].Content, results[1].Content)

	results, err = s.adapter.SearchPassages(ctx, "bible", searchVector, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(biblePassages[0].Content, results[0].Content)
}

func (s *RedisTestSuite) TestSearchPassagesEmptyCollection() {
	ctx, cancel := testContext()
	defer cancel()

	results, err := s.adapter.SearchPassages(ctx, "quran", testVector(testVectorDim, 0, 1), 10)
	s.Require().NoError(err)
	s.Empty(results)
}

func (s *RedisTestSuite) TestSearchPassagesLimit() {
	ctx, cancel := testContext()
	defer cancel()

	passages := make([]godprompt.Passage, 0, 5)
	vectors := make([]godprompt.Vector, 0, 5)
	for i := range 5 {
		passages = append(passages, godprompt.Passage{Content: fmt.Sprintf("verse %d", i)})
		vectors = append(vectors, testVector(testVectorDim, 0, 1))
	}

	s.Require().NoError(s.adapter.SavePassages(ctx, "gita", passages, vectors))

	results, err := s.adapter.SearchPassages(ctx, "gita", testVector(testVectorDim, 0, 1), 3)
	s.Require().NoError(err)
	s.Len(results, 3)
}

func testVector(dim int, min, max float32) godprompt.Vector {
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = min + rand.Float32()*(max-min)
	}
	return vec
}
