// Package mastery tracks how well a user knows each verb.
//
// A verb's score grows with every correct practice result and each practice
// mode (quiz, table, speech) is flagged once it has been completed with a
// fully correct answer. Until all three flags are set the score is capped
// below 100; completing the last mode forces it to 100. Scores never
// decrease and results are applied by returning a new record rather than
// modifying the existing one.
package mastery
