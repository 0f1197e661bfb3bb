// Package web is the HTTP transport of the chat server: page rendering,
// the polling JSON API, session cookies and static assets.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webchat-dev/webchat/internal/logging"
	"github.com/webchat-dev/webchat/internal/server/messages"
	"github.com/webchat-dev/webchat/internal/server/users"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// UserService is the slice of the users service the web layer needs.
type UserService interface {
	Register(ctx context.Context, username, password string) (*users.User, error)
	Login(ctx context.Context, username, password string) (string, *users.User, error)
}

// MessageService is the slice of the messages service the web layer needs.
type MessageService interface {
	Send(ctx context.Context, senderID int64, content string) (*messages.Message, error)
	FetchSince(ctx context.Context, afterID, userID int64) ([]messages.MessageView, error)
	Delete(ctx context.Context, id, userID int64) error
}

type Server struct {
	logger   logging.Logger
	users    UserService
	messages MessageService
	sessions *SessionManager
	tmpl     *template.Template
	validate *validator.Validate
}

func NewServer(l logging.Logger, us UserService, ms MessageService, sessions *SessionManager) (*Server, error) {

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		logger:   l.With("module", "web"),
		users:    us,
		messages: ms,
		sessions: sessions,
		tmpl:     tmpl,
		validate: validator.New(),
	}, nil
}

// Handler assembles the route tree. Credential submissions are rate limited
// by client IP; everything under the chat shell requires a session.
func (s *Server) Handler() http.Handler {

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	// installable-app assets and metrics, no session required
	r.Get("/manifest.json", s.manifest)
	r.Get("/sw.js", s.serviceWorker)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/login", s.loginPage)
	r.Get("/register", s.registerPage)
	r.Get("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/login", s.loginSubmit)
		r.Post("/register", s.registerSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Authenticate)

		// page routes bounce anonymous visitors to the login form
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequireAuthRedirect)
			r.Get("/", s.indexPage)
			r.Post("/delete/{id}", s.deleteMessage)
		})

		// API routes answer 401 instead
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequireAuth)
			r.Get("/get_messages", s.getMessages)
			r.Post("/send_message", s.sendMessage)
		})
	})

	return r
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(context.Background(), "template render failed", "template", name, "error", err)
	}
}
