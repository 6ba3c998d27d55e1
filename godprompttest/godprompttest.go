package godprompttest

import (
	"github.com/brianvoe/gofakeit/v6"

	godprompt "github.com/moby123/the-god-prompt"
)

func New(seed int64) *DataGen {
	return &DataGen{
		Faker: gofakeit.New(seed),
	}
}

// DataGen generates deterministic domain objects for tests.
type DataGen struct {
	*gofakeit.Faker
}

func (g *DataGen) Question() godprompt.Question {
	return godprompt.Question{
		Content: g.Faker.Question(),
	}
}

func (g *DataGen) Passage() godprompt.Passage {
	return godprompt.Passage{
		Content: g.Faker.Sentence(12),
		Score:   g.Faker.Float32Range(0, 1),
	}
}

func (g *DataGen) Passages(n int) []godprompt.Passage {
	passages := make([]godprompt.Passage, 0, n)
	for range n {
		passages = append(passages, g.Passage())
	}
	return passages
}

func (g *DataGen) Vector(dim int) godprompt.Vector {
	vector := make(godprompt.Vector, dim)
	for i := range vector {
		vector[i] = g.Faker.Float32Range(-1, 1)
	}
	return vector
}
