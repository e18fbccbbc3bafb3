package api

import (
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/conjugation"
)

// Common request/response structures. Verbs are serialized in the
// collection's persisted shape so that clients can reuse one model.

// StemChangeRequest is the stem change of a verb being added.
type StemChangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"   validate:"required"`
}

// CreateVerbRequest defines the payload for adding a verb.
type CreateVerbRequest struct {
	Infinitive     string             `json:"infinitive"     validate:"required,min=3"`
	Meaning        string             `json:"meaning"`
	Type           string             `json:"type"           validate:"required,oneof=regular irregular stem-changing"`
	IrregularForms map[string]string  `json:"irregularForms"`
	StemChange     *StemChangeRequest `json:"stemChange"     validate:"required_if=Type stem-changing,omitempty"`
}

// AnswerRequest defines the payload for a quiz or speech answer.
type AnswerRequest struct {
	Mode   string `json:"mode"   validate:"required,oneof=quiz speech"`
	Person string `json:"person" validate:"required"`
	Answer string `json:"answer"`
}

// TableRequest defines the payload for a conjugation table check. Keys are
// person names; missing cells count as wrong.
type TableRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
}

// VerbListResponse wraps the collection under its persisted key.
type VerbListResponse struct {
	Verbs []*domain.Verb `json:"verbos"`
}

// ConjugationsResponse lists the expected forms of a verb.
type ConjugationsResponse struct {
	Infinitive string             `json:"infinitive"`
	Forms      []conjugation.Form `json:"forms"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}
