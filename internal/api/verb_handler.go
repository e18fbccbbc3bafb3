package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/verbos-api/internal/api/shared"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/progress"
	"github.com/phrazzld/verbos-api/internal/platform/logger"
	"github.com/phrazzld/verbos-api/internal/redact"
	"github.com/phrazzld/verbos-api/internal/service"
)

// VerbHandler handles verb collection HTTP requests
type VerbHandler struct {
	verbService service.VerbService
	logger      *slog.Logger
}

// NewVerbHandler creates a new VerbHandler
func NewVerbHandler(verbService service.VerbService, logger *slog.Logger) *VerbHandler {
	if verbService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("verbService cannot be nil for VerbHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &VerbHandler{
		verbService: verbService,
		logger:      logger.With(slog.String("component", "verb_handler")),
	}
}

// ListVerbs handles GET /api/verbs requests
func (h *VerbHandler) ListVerbs(w http.ResponseWriter, r *http.Request) {
	verbs, err := h.verbService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list verbs")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerbListResponse{Verbs: verbs})
}

// GetVerb handles GET /api/verbs/{infinitive} requests
func (h *VerbHandler) GetVerb(w http.ResponseWriter, r *http.Request) {
	infinitive, err := getInfinitiveParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	verb, err := h.verbService.Get(r.Context(), infinitive)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get verb")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, verb)
}

// CreateVerb handles POST /api/verbs requests
func (h *VerbHandler) CreateVerb(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateVerbRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	params := service.NewVerbParams{
		Infinitive: req.Infinitive,
		Meaning:    req.Meaning,
		Category:   domain.Category(req.Type),
	}
	if len(req.IrregularForms) > 0 {
		overrides, err := parseAnswers(req.IrregularForms)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		params.IrregularOverrides = overrides
	}
	if req.StemChange != nil {
		params.StemChange = &domain.StemChange{From: req.StemChange.From, To: req.StemChange.To}
	}

	verb, err := h.verbService.Add(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add verb")
		return
	}

	log.Debug("verb created", slog.String("infinitive", verb.Infinitive))
	shared.RespondWithJSON(w, r, http.StatusCreated, verb)
}

// DeleteVerb handles DELETE /api/verbs/{infinitive} requests
func (h *VerbHandler) DeleteVerb(w http.ResponseWriter, r *http.Request) {
	infinitive, err := getInfinitiveParam(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.verbService.Remove(r.Context(), infinitive); err != nil {
		HandleAPIError(w, r, err, "Failed to remove verb")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetProgress handles GET /api/progress requests
func (h *VerbHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	verbs, err := h.verbService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load progress")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress.Summarize(verbs))
}
