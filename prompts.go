package godprompt

import (
	"fmt"
)

// RefusalPhrase is the canonical fallback the answering model is instructed
// to use when the retrieved passages do not address the question.
const RefusalPhrase = "The provided scriptures do not directly address this question."

const answerTemplateStr = `You are a wise and thoughtful scholar. Based on the excerpts below from a
sacred text, answer the question truthfully and respectfully.

Use ONLY the provided excerpts. Do not introduce ideas that are not grounded
in them. If the excerpts do not address the question, reply exactly:
"%s"
%s
Excerpts:
%s

Question:
%s

Answer:
`

const validateTemplateStr = `You are a scripture verifier. Judge whether the answer below is faithful to
the excerpts it was generated from.

Given the question:
%s

And the following answer:
%s

Check if the answer is:
- Relevant to the question
- Respectful and non-judgmental
- Consistent with the excerpts below

Excerpts:
%s

Start your reply with exactly one of the markers %s, %s or %s, followed by a
colon and a brief justification.
`

// AnswerPrompt renders the generation prompt for one source. The passages must
// be the retrieved context for this question, in descending similarity order,
// and must not be empty.
func AnswerPrompt(question Question, passages []Passage) string {
	var personaLine string
	if !question.Persona.IsZero() {
		personaLine = fmt.Sprintf("\nThe question comes from %s. Phrase your answer for them.\n", question.Persona.Describe())
	}
	return fmt.Sprintf(answerTemplateStr,
		RefusalPhrase,
		personaLine,
		JoinPassages(passages),
		question.Content,
	)
}

// ValidatePrompt renders the verification prompt. The passages must be the
// same ones the answer was generated from, the verifier has no way to
// re-retrieve or recheck provenance.
func ValidatePrompt(question Question, answer Answer, passages []Passage) string {
	return fmt.Sprintf(validateTemplateStr,
		question.Content,
		string(answer),
		JoinPassages(passages),
		VerdictValid, VerdictPartial, VerdictInvalid,
	)
}
