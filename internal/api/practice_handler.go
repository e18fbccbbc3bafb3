package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/verbos-api/internal/api/shared"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/redact"
	"github.com/phrazzld/verbos-api/internal/service/practice"
)

// PracticeHandler handles the practice HTTP requests
type PracticeHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(practiceService practice.Service, logger *slog.Logger) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for PracticeHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PracticeHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// GetConjugations handles GET /api/verbs/{infinitive}/conjugations requests
func (h *PracticeHandler) GetConjugations(w http.ResponseWriter, r *http.Request) {
	infinitive, err := getInfinitiveParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	forms, err := h.practiceService.Conjugations(r.Context(), infinitive)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to conjugate verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConjugationsResponse{
		Infinitive: infinitive,
		Forms:      forms,
	})
}

// GetNextPrompt handles GET /api/practice/next requests.
// An empty collection yields 204 No Content.
func (h *PracticeHandler) GetNextPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.practiceService.NextPrompt(r.Context())
	if errors.Is(err, practice.ErrNoVerbs) {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("no verbs to practice")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to pick a verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, prompt)
}

// SubmitAnswer handles POST /api/verbs/{infinitive}/answers requests
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	infinitive, err := getInfinitiveParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("infinitive", infinitive))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	person, err := domain.ParsePerson(req.Person)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.practiceService.SubmitAnswer(
		r.Context(),
		infinitive,
		domain.PracticeMode(req.Mode),
		person,
		req.Answer,
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitTable handles POST /api/verbs/{infinitive}/table requests
func (h *PracticeHandler) SubmitTable(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	infinitive, err := getInfinitiveParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TableRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("infinitive", infinitive))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	answers, err := parseAnswers(req.Answers)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.practiceService.SubmitTable(r.Context(), infinitive, answers)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check table")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
