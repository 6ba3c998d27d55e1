package godprompt

import (
	"fmt"
	"strings"
)

type Sex string

const (
	SexFemale  Sex = "female"
	SexMale    Sex = "male"
	SexOther   Sex = "other"
	SexUnknown Sex = "unknown"
)

func (s Sex) Valid() bool {
	switch s {
	case SexFemale, SexMale, SexOther, SexUnknown:
		return true
	}
	return false
}

// Persona carries optional demographic attributes used only to personalise
// prompt phrasing. A zero Persona means no personalisation.
type Persona struct {
	Age     uint
	Country string
	Sex     Sex
}

func (p Persona) IsZero() bool {
	return p.Age == 0 && p.Country == "" && (p.Sex == "" || p.Sex == SexUnknown)
}

// Describe renders the persona as a short prompt fragment,
// e.g. "a 34 year old female from Chile".
func (p Persona) Describe() string {
	if p.IsZero() {
		return ""
	}

	parts := []string{"a"}
	if p.Age > 0 {
		parts = append(parts, fmt.Sprintf("%d year old", p.Age))
	}
	if p.Sex != "" && p.Sex != SexUnknown {
		parts = append(parts, string(p.Sex))
	} else {
		parts = append(parts, "person")
	}
	if p.Country != "" {
		parts = append(parts, "from "+p.Country)
	}

	return strings.Join(parts, " ")
}

// Question is a free text question supplied by the end user. Immutable once
// submitted, its lifecycle is scoped to a single request.
type Question struct {
	Content string
	Persona Persona
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Content) == "" {
		return ErrEmptyQuestion
	}
	if q.Persona.Sex != "" && !q.Persona.Sex.Valid() {
		return fmt.Errorf("invalid sex: %s", q.Persona.Sex)
	}
	return nil
}

func (q Question) String() string {
	return q.Content
}
