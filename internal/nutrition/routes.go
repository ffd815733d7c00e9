package nutrition

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	allowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
	allowedMethods = []string{http.MethodPost, http.MethodOptions}

	allowedHeadersValue = strings.Join(allowedHeaders, ", ")
	allowedMethodsValue = strings.Join(allowedMethods, ", ")
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/nutrition-ai", h.HandleAssistant)
	r.Options("/nutrition-ai", h.HandlePreflight)
}

// NewRouter wires middleware, CORS and the assistant routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: allowedMethods,
		AllowedHeaders: allowedHeaders,
		MaxAge:         300,
	}))

	RegisterRoutes(r, h)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	return r
}
