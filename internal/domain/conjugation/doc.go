// Package conjugation implements the present-indicative conjugation rules for
// regular, irregular and stem-changing verbs, together with the answer
// comparison used by the practice surfaces.
//
// Every function in this package is pure: it performs no I/O, holds no state
// and never fails. Malformed input degrades to a best-effort form instead of
// returning an error, so callers can use it directly while checking answers.
package conjugation
