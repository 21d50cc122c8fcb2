package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nurash908/Selfie2Snap/internal/http-server/handler/preset"
	"github.com/Nurash908/Selfie2Snap/internal/http-server/handler/snap"
	"github.com/Nurash908/Selfie2Snap/internal/http-server/middleware"
)

type Handler struct {
	SnapHandler   *snap.SnapHandler
	PresetHandler *preset.PresetHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", h.SnapHandler.Generate)
		r.Get("/styles", h.SnapHandler.ListStyles)

		r.Route("/snaps", func(r chi.Router) {
			r.Get("/", h.SnapHandler.ListSnaps)
			r.Get("/{id}", h.SnapHandler.GetSnap)
			r.Delete("/{id}", h.SnapHandler.DeleteSnap)
			r.Post("/{id}/favorite", h.SnapHandler.ToggleFavorite)
			r.Post("/{id}/enhance", h.SnapHandler.Enhance)
			r.Post("/{id}/watermark", h.SnapHandler.Watermark)
		})

		r.Post("/archive", h.SnapHandler.Archive)

		r.Route("/presets/watermark", func(r chi.Router) {
			r.Get("/", h.PresetHandler.ListPresets)
			r.Post("/", h.PresetHandler.CreatePreset)
			r.Delete("/{id}", h.PresetHandler.DeletePreset)
			r.Post("/{id}/apply", h.PresetHandler.ApplyPreset)
		})

		r.Route("/preferences/watermark", func(r chi.Router) {
			r.Get("/", h.PresetHandler.GetPreference)
			r.Put("/", h.PresetHandler.SavePreference)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
