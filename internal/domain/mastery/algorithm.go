package mastery

import (
	"math"

	"github.com/phrazzld/verbos-api/internal/domain"
)

// tableGain returns the mastery gain of a conjugation table with
// correctCells correct answers.
//
// The gain is proportional: a fully correct table earns params.TableStep,
// four of six cells earn two thirds of it.
func tableGain(correctCells int, params *Params) float64 {
	return float64(correctCells) / float64(params.TableCells) * params.TableStep
}

// settleMastery computes the final score after a gain has been applied.
//
// Parameters:
//   - prior: the verb's score before the result
//   - candidate: prior plus the gain, before rounding and capping
//   - modes: the completed modes after the result
//   - params: tracker configuration
//
// Algorithm behavior:
//   - every mode completed: the score is forced to FullMastery
//   - otherwise the candidate is rounded and capped at params.PartialCap
//   - the result is never lower than prior, so a score forced to 100 from
//     outside the tracker is kept
func settleMastery(prior int, candidate float64, modes domain.CompletedModes, params *Params) int {
	if modes.All() {
		return FullMastery
	}

	score := int(math.Round(candidate))
	if score > params.PartialCap {
		score = params.PartialCap
	}
	if score < prior {
		score = prior
	}

	return score
}

// calculateNextVerb creates a new Verb with the result of one practice
// submission applied.
//
// Parameters:
//   - verb: the current record, never modified
//   - mode: the practice mode the result was produced in
//   - gain: the mastery gain earned by the result, zero for a wrong answer
//   - completes: whether the result counts as a fully correct answer for mode
//   - params: tracker configuration
//
// A completing result marks the mode as done; flags already set stay set.
func calculateNextVerb(
	verb *domain.Verb,
	mode domain.PracticeMode,
	gain float64,
	completes bool,
	params *Params,
) *domain.Verb {
	next := verb.Clone()

	if completes {
		next.CompletedModes = next.CompletedModes.With(mode)
	}

	next.Mastery = settleMastery(verb.Mastery, float64(verb.Mastery)+gain, next.CompletedModes, params)

	return next
}
