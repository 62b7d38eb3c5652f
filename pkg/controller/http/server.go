package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	slacksvc "github.com/firerml/tasker/pkg/service/slack"
	"github.com/firerml/tasker/pkg/usecase"
	"github.com/firerml/tasker/pkg/utils/safe"
)

type Server struct {
	router        *chi.Mux
	messenger     *usecase.Messenger
	gateway       slacksvc.Service
	signingSecret string
}

type Options func(*Server)

// WithSigningSecret enables Slack request signature verification on all
// webhook routes
func WithSigningSecret(secret string) Options {
	return func(s *Server) {
		s.signingSecret = secret
	}
}

// New creates the HTTP server with the Slack webhook surface:
// POST /events, POST /message_action, and the /assign and /tasks slash
// commands.
func New(messenger *usecase.Messenger, gateway slacksvc.Service, opts ...Options) (*Server, error) {
	if messenger == nil {
		return nil, goerr.New("messenger is required")
	}
	if gateway == nil {
		return nil, goerr.New("slack gateway is required")
	}

	s := &Server{
		router:    chi.NewRouter(),
		messenger: messenger,
		gateway:   gateway,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	eventHandler := NewSlackEventHandler(s.messenger, s.gateway)
	interactionHandler := NewSlackInteractionHandler(s.messenger)

	r.Group(func(r chi.Router) {
		if s.signingSecret != "" {
			r.Use(SlackSignatureMiddleware(s.signingSecret))
		}

		r.Post("/events", eventHandler.ServeHTTP)
		r.Post("/message_action", interactionHandler.ServeHTTP)
		r.Post("/assign", assignCommandHandler(s.messenger))
		r.Post("/tasks", tasksCommandHandler(s.messenger))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
