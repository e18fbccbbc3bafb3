package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/service"
)

// InfinitiveParam is the route parameter naming a verb.
const InfinitiveParam = "infinitive"

// getInfinitiveParam extracts the normalized infinitive from the URL path.
//
// Returns:
//   - (infinitive, nil): The lower-cased, trimmed infinitive
//   - ("", error): A validation error if the parameter is missing
func getInfinitiveParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, InfinitiveParam)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	infinitive := service.NormalizeInfinitive(raw)
	if infinitive == "" {
		return "", domain.ErrEmptyInfinitive
	}
	return infinitive, nil
}

// parseAnswers converts person-keyed answers from a request body.
// Unknown person names are rejected; "tu" and "el" are accepted for tú and él.
func parseAnswers(raw map[string]string) (map[domain.Person]string, error) {
	answers := make(map[domain.Person]string, len(raw))
	for key, answer := range raw {
		person, err := domain.ParsePerson(key)
		if err != nil {
			return nil, err
		}
		if _, dup := answers[person]; dup {
			return nil, fmt.Errorf("%w: %q given twice", domain.ErrInvalidPerson, person)
		}
		answers[person] = answer
	}
	return answers, nil
}
