package weaviate

import (
	"testing"

	"github.com/weaviate/weaviate/entities/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Gita", className("gita"))
	assert.Equal(t, "Bible", className("Bible"))
	assert.Equal(t, "", className(""))
}

func TestDecodeGetPassageResults(t *testing.T) {
	t.Parallel()

	graphqlResponse := &models.GraphQLResponse{
		Data: map[string]models.JSONObject{
			"Get": map[string]any{
				"Gita": []any{
					map[string]any{
						"text": "  You have a right to perform your duty  ",
						"_additional": map[string]any{
							"certainty": 0.91,
						},
					},
					map[string]any{
						"text": "Set thy heart upon thy work",
					},
				},
			},
		},
	}

	passages, err := decodeGetPassageResults(graphqlResponse, "Gita")
	require.NoError(t, err)
	require.Len(t, passages, 2)

	assert.Equal(t, "You have a right to perform your duty", passages[0].Content)
	assert.InDelta(t, 0.91, passages[0].Score, 0.001)
	assert.Equal(t, "Set thy heart upon thy work", passages[1].Content)
	assert.Zero(t, passages[1].Score)
}

func TestDecodeGetPassageResultsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response *models.GraphQLResponse
	}{
		{
			"missing get key",
			&models.GraphQLResponse{Data: map[string]models.JSONObject{}},
		},
		{
			"class is not a list",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Get": map[string]any{"Gita": "not-a-list"},
				},
			},
		},
		{
			"passage without text",
			&models.GraphQLResponse{
				Data: map[string]models.JSONObject{
					"Get": map[string]any{"Gita": []any{map[string]any{"page": 1.0}}},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeGetPassageResults(tc.response, "Gita")
			assert.Error(t, err)
		})
	}
}

func TestCombinedWeaviateError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, combinedWeaviateError(&models.GraphQLResponse{}, nil))
	assert.Error(t, combinedWeaviateError(nil, assert.AnError))
	assert.Error(t, combinedWeaviateError(&models.GraphQLResponse{
		Errors: []*models.GraphQLError{{Message: "class not found"}},
	}, nil))
}
