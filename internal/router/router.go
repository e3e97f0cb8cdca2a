package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"krishi-sakhi-backend/internal/handlers"
	"krishi-sakhi-backend/internal/middleware"
)

func New(
	sessionHandler *handlers.SessionHandler,
	contentHandler *handlers.ContentHandler,
	weatherHandler *handlers.WeatherHandler,
	submitLimiter *middleware.RateLimiter,
	wsHandler http.HandlerFunc,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/content", contentHandler.GetContent)
		r.Get("/suppliers", contentHandler.ListSuppliers)
		r.Get("/weather", weatherHandler.Current)

		// ──── Sessions ────
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.End)
				r.With(submitLimiter.Middleware).Post("/messages", sessionHandler.Submit)
				r.Put("/language", sessionHandler.ChangeLanguage)
				r.Put("/draft", sessionHandler.SetDraft)
				r.Post("/suppliers/toggle", sessionHandler.ToggleSuppliers)

				r.Route("/voice", func(r chi.Router) {
					r.Post("/toggle", sessionHandler.ToggleVoice)
					r.Put("/transcript", sessionHandler.UpdateTranscript)
					r.Post("/ended", sessionHandler.VoiceEnded)
				})
			})
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHandler)
	})

	return r
}
