package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// VerbColumns lists the columns read by the SQL verb stores, in scan order.
const VerbColumns = `infinitive, meaning, category, irregular_forms, stem_change_from,
	stem_change_to, mastery, quiz_completed, table_completed, speech_completed`

// VerbRow is the column layout of the verbs table shared by the SQL stores.
type VerbRow struct {
	Infinitive     string
	Meaning        string
	Category       string
	IrregularForms sql.NullString
	StemChangeFrom sql.NullString
	StemChangeTo   sql.NullString
	Mastery        int
	Quiz           bool
	Table          bool
	Speech         bool
}

// NewVerbRow flattens a verb into its column values.
// Irregular overrides are stored as a JSON object keyed by person.
func NewVerbRow(verb *domain.Verb) (VerbRow, error) {
	row := VerbRow{
		Infinitive: verb.Infinitive,
		Meaning:    verb.Meaning,
		Category:   string(verb.Category),
		Mastery:    verb.Mastery,
		Quiz:       verb.CompletedModes.Quiz,
		Table:      verb.CompletedModes.Table,
		Speech:     verb.CompletedModes.Speech,
	}

	if len(verb.IrregularOverrides) > 0 {
		raw, err := json.Marshal(verb.IrregularOverrides)
		if err != nil {
			return VerbRow{}, fmt.Errorf("failed to encode irregular forms: %w", err)
		}
		row.IrregularForms = sql.NullString{String: string(raw), Valid: true}
	}

	if verb.StemChange != nil {
		row.StemChangeFrom = sql.NullString{String: verb.StemChange.From, Valid: true}
		row.StemChangeTo = sql.NullString{String: verb.StemChange.To, Valid: true}
	}

	return row, nil
}

// ScanTargets returns pointers to the row's fields in VerbColumns order.
func (r *VerbRow) ScanTargets() []any {
	return []any{
		&r.Infinitive,
		&r.Meaning,
		&r.Category,
		&r.IrregularForms,
		&r.StemChangeFrom,
		&r.StemChangeTo,
		&r.Mastery,
		&r.Quiz,
		&r.Table,
		&r.Speech,
	}
}

// Args returns the row's values in VerbColumns order, for INSERT statements.
func (r VerbRow) Args() []any {
	return []any{
		r.Infinitive,
		r.Meaning,
		r.Category,
		r.IrregularForms,
		r.StemChangeFrom,
		r.StemChangeTo,
		r.Mastery,
		r.Quiz,
		r.Table,
		r.Speech,
	}
}

// Verb rebuilds the domain record from a scanned row.
func (r VerbRow) Verb() (*domain.Verb, error) {
	verb := &domain.Verb{
		Infinitive: r.Infinitive,
		Meaning:    r.Meaning,
		Category:   domain.Category(r.Category),
		Mastery:    r.Mastery,
		CompletedModes: domain.CompletedModes{
			Quiz:   r.Quiz,
			Table:  r.Table,
			Speech: r.Speech,
		},
	}

	if r.IrregularForms.Valid && r.IrregularForms.String != "" {
		var overrides map[domain.Person]string
		if err := json.Unmarshal([]byte(r.IrregularForms.String), &overrides); err != nil {
			return nil, fmt.Errorf("failed to decode irregular forms of %q: %w", r.Infinitive, err)
		}
		if len(overrides) > 0 {
			verb.IrregularOverrides = overrides
		}
	}

	if r.StemChangeTo.Valid {
		verb.StemChange = &domain.StemChange{From: r.StemChangeFrom.String, To: r.StemChangeTo.String}
	}

	return verb, nil
}
