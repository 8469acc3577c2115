package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Registers the swagger spec served under /api/swagger.
	_ "chatbench/docs"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Chat   *ChatHandler
	Model  *ModelHandler
	Export *ExportHandler
}

// NewRouter builds the chi router. frontendDir is served at the root when
// it is not empty.
func NewRouter(h Handlers, frontendDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/settings", h.Chat.GetSettings)
			r.Post("/settings", h.Chat.UpdateSettings)

			r.Get("/conversations", h.Chat.ListConversations)
			r.Post("/conversations", h.Chat.CreateConversation)
			r.Get("/conversations/{id}", h.Chat.GetConversation)
			r.Delete("/conversations/{id}", h.Chat.DeleteConversation)
			r.Delete("/conversations/{id}/turns", h.Chat.ClearConversation)

			r.Get("/models/local", h.Model.HandleListLocal)
			r.Get("/models/inspect", h.Model.HandleInspect)
			r.Get("/hub/files", h.Model.HandleHubFiles)
		})

		// No timeout: model loading, generation, downloads and sheet
		// writes can all outlast it.
		r.Group(func(r chi.Router) {
			r.Post("/conversations/{id}/messages", h.Chat.HandleStreamMessage)
			r.Post("/conversations/{id}/export", h.Export.HandleExport)
			r.Post("/hub/download", h.Model.HandleDownload)
		})
	})

	if frontendDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(frontendDir)))
	}

	return r
}
