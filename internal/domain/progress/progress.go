// Package progress aggregates a verb collection into the figures shown on a
// progress dashboard.
package progress

import (
	"github.com/phrazzld/verbos-api/internal/domain"
)

// Level is a mastery band.
type Level string

// Mastery bands, from least to most practiced.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
	LevelMastered     Level = "mastered"
)

// Levels returns every band in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert, LevelMastered}
}

// LevelOf returns the band a mastery score falls into.
func LevelOf(mastery int) Level {
	switch {
	case mastery >= 100:
		return LevelMastered
	case mastery >= 75:
		return LevelExpert
	case mastery >= 50:
		return LevelAdvanced
	case mastery >= 25:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// Summary holds aggregate figures for a verb collection.
type Summary struct {
	TotalVerbs     int                         `json:"total_verbs"`
	MasteredVerbs  int                         `json:"mastered_verbs"`
	AverageMastery float64                     `json:"average_mastery"`
	ByLevel        map[Level]int               `json:"by_level"`
	ByCategory     map[domain.Category]int     `json:"by_category"`
	ModesCompleted map[domain.PracticeMode]int `json:"modes_completed"`
}

// Summarize computes the summary of verbs. Every level is present in
// ByLevel, with zero counts where no verb falls into it. An empty collection
// has an average of zero.
func Summarize(verbs []*domain.Verb) Summary {
	summary := Summary{
		ByLevel:        make(map[Level]int, len(Levels())),
		ByCategory:     make(map[domain.Category]int),
		ModesCompleted: make(map[domain.PracticeMode]int, 3),
	}
	for _, level := range Levels() {
		summary.ByLevel[level] = 0
	}

	total := 0
	for _, verb := range verbs {
		if verb == nil {
			continue
		}

		summary.TotalVerbs++
		total += verb.Mastery
		summary.ByLevel[LevelOf(verb.Mastery)]++
		summary.ByCategory[verb.Category]++

		if verb.IsMastered() {
			summary.MasteredVerbs++
		}
		for _, mode := range []domain.PracticeMode{
			domain.PracticeModeQuiz,
			domain.PracticeModeTable,
			domain.PracticeModeSpeech,
		} {
			if verb.CompletedModes.Has(mode) {
				summary.ModesCompleted[mode]++
			}
		}
	}

	if summary.TotalVerbs > 0 {
		summary.AverageMastery = float64(total) / float64(summary.TotalVerbs)
	}

	return summary
}
