// Package practice implements the practice surfaces: the quiz prompt picker,
// quiz and speech answer checks, and the conjugation table check.
//
// The package owns the flow around the domain core. It reads the verb from
// the store, asks the conjugation engine for the expected form, compares
// answers with conjugation.Matches, hands the outcome to the mastery tracker
// and writes the returned record back. Wrong answers are results, not
// errors, and never lower mastery.
package practice
