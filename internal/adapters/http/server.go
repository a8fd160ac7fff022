package httpadapter

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	api "ethicsreview/internal/api"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/services/commands"
	"ethicsreview/internal/services/presentation"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Sessions is the wallet session surface the handlers drive.
type Sessions interface {
	Current() *ports.Connection
	Connect(ctx context.Context) (*ports.Connection, error)
	Disconnect()
	Refresh(ctx context.Context) bool
}

type Deps struct {
	Sessions    Sessions
	Commands    *commands.Service
	Tracker     *commands.Tracker
	Binder      *presentation.Binder
	Reloader    ports.Reloader
	Projection  ports.ProjectionStore // nil when event watching is off
	Metrics     *metrics.Metrics
	CallTimeout time.Duration
	CORSOrigins []string
	Log         zerolog.Logger
}

// Server renders the review page and exposes the JSON API.
type Server struct {
	Deps
}

func New(d Deps) *Server {
	if d.CallTimeout <= 0 {
		d.CallTimeout = 30 * time.Second
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}
	return &Server{Deps: d}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.Log))

	r.Get("/", s.getIndex)
	r.Post("/connect", s.postConnect)
	r.Post("/disconnect", s.postDisconnect)
	r.Post("/reload", s.postReload)
	r.Post("/proposals", s.postProposal)
	r.Post("/reviewers", s.postReviewer)
	r.Post("/reviews", s.postReview)
	r.Post("/assignments", s.postAssignment)
	r.Post("/operations/{id}/cancel", s.postCancel)

	r.Handle("/metrics", s.Metrics.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: s.CORSOrigins,
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	})
	r.Group(func(g chi.Router) {
		g.Use(c.Handler)
		// preflight is answered by the cors handler
		g.Options("/api/*", func(http.ResponseWriter, *http.Request) {})
		api.HandlerWithOptions(api.NewStrictHandler(s, nil), api.ChiServerOptions{
			BaseRouter:       g,
			ErrorHandlerFunc: paramError,
		})
	})
	return r
}

// NewHTTPServer wraps the router with the timeouts used in production.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       time.Minute,
	}
}

// page reconciles the session with the provider before taking a snapshot, so
// an account or chain switch shows up on the next render.
func (s *Server) page(ctx context.Context) presentation.Page {
	if s.Sessions.Refresh(ctx) && s.Sessions.Current() != nil {
		s.startReload()
	}
	return s.Binder.Page(s.pending())
}

func (s *Server) pending() []presentation.PendingOperation {
	ops := s.Tracker.Pending()
	out := make([]presentation.PendingOperation, 0, len(ops))
	for _, op := range ops {
		out = append(out, presentation.PendingOperation{
			ID:    op.ID,
			Name:  op.Name,
			Since: op.StartedAt.Format(time.Kitchen),
		})
	}
	return out
}

func (s *Server) startReload() string {
	return s.Tracker.Go("load data", func(ctx context.Context) error {
		s.Reloader.Reload(ctx)
		return nil
	})
}
