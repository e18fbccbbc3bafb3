package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/verbos-api/internal/api"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/mastery"
	"github.com/phrazzld/verbos-api/internal/domain/progress"
	"github.com/phrazzld/verbos-api/internal/platform/jsonstore"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func newTestServer(t *testing.T, verbs ...*domain.Verb) *httptest.Server {
	t.Helper()

	verbStore := jsonstore.NewMemoryStore(nil)
	if len(verbs) > 0 {
		require.NoError(t, verbStore.Save(context.Background(), verbs))
	}

	verbService, err := service.NewVerbService(verbStore, nil)
	require.NoError(t, err)
	practiceService, err := practice.NewService(verbStore, mastery.NewDefaultService(), nil,
		practice.WithPicker(firstPicker{}))
	require.NoError(t, err)

	r := chi.NewRouter()
	api.RegisterRoutes(r, api.NewVerbHandler(verbService, nil), api.NewPracticeHandler(practiceService, nil))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, server *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func hablar() *domain.Verb {
	return &domain.Verb{Infinitive: "hablar", Meaning: "to speak", Category: domain.CategoryRegular}
}

func TestVerbEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, hablar())

	t.Run("list uses the collection key", func(t *testing.T) {
		resp := do(t, server, http.MethodGet, "/api/verbs", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[map[string][]map[string]any](t, resp)
		require.Len(t, body["verbos"], 1)
		assert.Equal(t, "hablar", body["verbos"][0]["infinitive"])
		assert.Equal(t, "regular", body["verbos"][0]["type"])
	})

	t.Run("create irregular verb", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs",
			`{"infinitive":"Tener","meaning":"to have","type":"irregular","irregularForms":{"yo":"tengo","tu":"tienes"}}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		verb := decode[domain.Verb](t, resp)
		assert.Equal(t, "tener", verb.Infinitive)
		assert.Equal(t, "tienes", verb.IrregularOverrides[domain.PersonTu])
		assert.Zero(t, verb.Mastery)
	})

	t.Run("create duplicate", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs", `{"infinitive":"hablar","type":"regular"}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("create with bad suffix", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs", `{"infinitive":"hablor","type":"regular"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[map[string]string](t, resp)
		assert.Equal(t, "Infinitive must end in -ar, -er or -ir", body["error"])
	})

	t.Run("create stem-changing without stem change", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs", `{"infinitive":"pedir","type":"stem-changing"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create with malformed body", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs", `{"infinitive":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		resp := do(t, server, http.MethodGet, "/api/verbs/HABLAR", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "to speak", decode[domain.Verb](t, resp).Meaning)

		resp = do(t, server, http.MethodGet, "/api/verbs/nadar", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("conjugations", func(t *testing.T) {
		resp := do(t, server, http.MethodGet, "/api/verbs/hablar/conjugations", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode[api.ConjugationsResponse](t, resp)
		require.Len(t, body.Forms, 6)
		assert.Equal(t, "hablamos", body.Forms[3].Form)
	})
}

func TestDeleteVerb(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, hablar())

	resp := do(t, server, http.MethodDelete, "/api/verbs/hablar", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, server, http.MethodDelete, "/api/verbs/hablar", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPracticeEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t, hablar())

	t.Run("next prompt", func(t *testing.T) {
		resp := do(t, server, http.MethodGet, "/api/practice/next", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		prompt := decode[practice.Prompt](t, resp)
		assert.Equal(t, "hablar", prompt.Verb.Infinitive)
		assert.Equal(t, domain.PersonYo, prompt.Person)
	})

	t.Run("correct answer", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs/hablar/answers",
			`{"mode":"quiz","person":"tu","answer":"Hablas"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode[practice.AnswerResult](t, resp)
		assert.True(t, result.Correct)
		assert.Equal(t, domain.PersonTu, result.Person)
		assert.Equal(t, 5, result.Verb.Mastery)
	})

	t.Run("invalid mode", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs/hablar/answers",
			`{"mode":"table","person":"yo","answer":"hablo"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid person", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs/hablar/answers",
			`{"mode":"quiz","person":"vosotros","answer":"habláis"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid person", decode[map[string]string](t, resp)["error"])
	})

	t.Run("table", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs/hablar/table",
			`{"answers":{"yo":"hablo","tú":"hablas","él":"habla","nosotros":"hablamos","ellos":"hablan","ustedes":"hablan"}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := decode[practice.TableResult](t, resp)
		assert.Equal(t, 6, result.CorrectCount)
		assert.Empty(t, result.Feedback)
		assert.Equal(t, 25, result.Verb.Mastery)
		assert.True(t, result.Verb.CompletedModes.Table)
	})

	t.Run("table with duplicate person keys", func(t *testing.T) {
		resp := do(t, server, http.MethodPost, "/api/verbs/hablar/table",
			`{"answers":{"tu":"hablas","tú":"hablas"}}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("progress", func(t *testing.T) {
		resp := do(t, server, http.MethodGet, "/api/progress", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		summary := decode[progress.Summary](t, resp)
		assert.Equal(t, 1, summary.TotalVerbs)
		assert.InDelta(t, 25.0, summary.AverageMastery, 1e-9)
		assert.Equal(t, 1, summary.ByLevel[progress.LevelIntermediate])
	})
}

func TestNextPromptEmptyCollection(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp := do(t, server, http.MethodGet, "/api/practice/next", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
