package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"

	godprompt "github.com/moby123/the-god-prompt"
)

// SavePassages stores passage contents with their embedding vectors under the
// collection tag, so each scripture stays independently searchable.
func (a *Adapter) SavePassages(ctx context.Context, collection string, passages []godprompt.Passage, vectors []godprompt.Vector) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passages and vectors must have the same length")
	}

	for i, vector := range vectors {
		key := fmt.Sprintf("%s%v", a.indexPrefix, uuid.Must(uuid.NewV4()))
		fields, err := a.client.HSet(ctx,
			key,
			map[string]any{
				"content":    passages[i].Content,
				"collection": collection,
				"embedding":  floatsToBytes(vector),
			},
		).Result()
		if err != nil {
			return err
		}
		if fields == 0 {
			return fmt.Errorf("no fields were added to redis")
		}
	}

	return nil
}

func (a *Adapter) SearchPassages(ctx context.Context, collection string, vector godprompt.Vector, limit int) ([]godprompt.Passage, error) {
	if vector == nil {
		return nil, fmt.Errorf("vector is required for searching passages")
	}

	query := fmt.Sprintf("(@collection:{%s})=>[KNN %d @embedding $vec AS vector_distance]", collection, limit)

	// The results are ordered according to the value of the vector_distance
	// field, with the lowest distance indicating the greatest similarity to
	// the query.
	results, err := a.client.FTSearchWithArgs(ctx,
		a.indexName,
		query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "vector_distance"},
				{FieldName: "content"},
			},
			DialectVersion: a.dialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(vector),
			},
			SortBy: []redis.FTSearchSortBy{{FieldName: "vector_distance", Asc: true}},
			Limit:  limit,
		},
	).Result()
	if err != nil {
		return nil, err
	}

	return mapRedisPassages(results.Docs)
}

func mapRedisPassages(rds []redis.Document) ([]godprompt.Passage, error) {
	passages := make([]godprompt.Passage, 0, len(rds))

	for _, rd := range rds {
		aPassage, err := mapRedisPassage(rd)
		if err != nil {
			return nil, err
		}
		passages = append(passages, aPassage.Sanitize())
	}

	return passages, nil
}

func mapRedisPassage(rd redis.Document) (godprompt.Passage, error) {
	content, ok := rd.Fields["content"]
	if !ok {
		return godprompt.Passage{}, fmt.Errorf("expected content in redis document %s", rd.ID)
	}

	aPassage := godprompt.Passage{Content: content}

	if distance, ok := rd.Fields["vector_distance"]; ok {
		parsed, err := strconv.ParseFloat(distance, 32)
		if err != nil {
			return godprompt.Passage{}, fmt.Errorf("invalid vector distance in redis document %s: %v", rd.ID, err)
		}
		// Cosine distance, lower is closer. Flip it so a higher score still
		// means more similar, matching the other retrievers.
		aPassage.Score = 1 - float32(parsed)
	}

	return aPassage, nil
}

func floatsToBytes(fs []float32) []byte {
	buf := make([]byte, len(fs)*4)

	for i, f := range fs {
		u := math.Float32bits(f)
		binary.LittleEndian.PutUint32(buf[i*4:], u)
	}

	return buf
}
