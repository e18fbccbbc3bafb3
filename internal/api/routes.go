package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the verb and practice endpoints under /api.
func RegisterRoutes(r chi.Router, verbHandler *VerbHandler, practiceHandler *PracticeHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/progress", verbHandler.GetProgress)
		r.Get("/practice/next", practiceHandler.GetNextPrompt)

		r.Route("/verbs", func(r chi.Router) {
			r.Get("/", verbHandler.ListVerbs)
			r.Post("/", verbHandler.CreateVerb)

			r.Route("/{"+InfinitiveParam+"}", func(r chi.Router) {
				r.Get("/", verbHandler.GetVerb)
				r.Delete("/", verbHandler.DeleteVerb)
				r.Get("/conjugations", practiceHandler.GetConjugations)
				r.Post("/answers", practiceHandler.SubmitAnswer)
				r.Post("/table", practiceHandler.SubmitTable)
			})
		})
	})
}
