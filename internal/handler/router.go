package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/askmatic/askly-server/internal/auth"
	authHandler "github.com/askmatic/askly-server/internal/handler/auth"
	chatHandler "github.com/askmatic/askly-server/internal/handler/chat"
	streamHandler "github.com/askmatic/askly-server/internal/handler/stream"
	"github.com/askmatic/askly-server/internal/middleware"
	authService "github.com/askmatic/askly-server/internal/service/auth"
	chatService "github.com/askmatic/askly-server/internal/service/chat"
	"github.com/askmatic/askly-server/pkg/utils"
)

// Deps bundles what the router needs from the composition root.
type Deps struct {
	AuthSvc     *authService.Service
	ChatSvc     *chatService.Service
	Captioner   chatHandler.Captioner
	Issuer      *auth.Issuer
	Interval    time.Duration
	Environment string
	Log         zerolog.Logger
}

// NewRouter wires HTTP routes to core services. The returned stream handler
// lets the composition root cancel in-flight deliveries on shutdown.
func NewRouter(deps Deps) (http.Handler, *streamHandler.Handler) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	accounts := authHandler.New(deps.AuthSvc, deps.Issuer)
	chats := chatHandler.New(deps.ChatSvc, deps.Captioner)
	streams := streamHandler.New(deps.ChatSvc, deps.Interval, deps.Log)
	gate := middleware.SessionGate(deps.Issuer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"message":     "Askly API server is running",
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": deps.Environment,
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			accounts.RegisterRoutes(ar)
		})

		api.Route("/chat", func(cr chi.Router) {
			cr.Use(gate)
			chats.RegisterRoutes(cr)

			cr.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
				userID, _ := middleware.UserID(r.Context())
				message := r.URL.Query().Get("message")
				conversationID := r.URL.Query().Get("conversationId")

				if message == "" {
					utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
					return
				}

				if err := streams.HandleStream(w, r, userID, conversationID, message); err != nil {
					if errors.Is(err, chatService.ErrEmptyMessage) {
						utils.RespondError(w, http.StatusBadRequest, "message is required")
						return
					}
					deps.Log.Error().Err(err).Msg("stream request failed")
					utils.RespondError(w, http.StatusBadGateway, "streaming failed")
				}
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusNotFound, map[string]any{
			"error":           "Route not found",
			"path":            r.URL.Path,
			"method":          r.Method,
			"availableRoutes": []string{"/api/auth", "/api/chat"},
		})
	})

	return r, streams
}
