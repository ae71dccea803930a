package rest

import (
	"encoding/json"
	"net/http"

	"supportportal/application/commands/bus"
	"supportportal/application/ports"
	querybus "supportportal/application/queries/bus"
	"supportportal/interfaces/http/rest/handlers"
	"supportportal/interfaces/http/rest/middleware"
	"supportportal/pkg/api"
	pkgerrors "supportportal/pkg/errors"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options configures the router's outer surface
type Options struct {
	BasePath       string
	AllowedOrigins []string
	PreviewPattern string

	// Metrics and MetricsHandler are optional; leaving them nil disables /metrics
	Metrics        middleware.HTTPMetrics
	MetricsHandler http.Handler

	// Tracing is optional
	Tracing func(next http.Handler) http.Handler
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	session    ports.SessionState
	opts       Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	session ports.SessionState,
	opts Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		session:    session,
		opts:       opts,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()
	errorHandler := pkgerrors.NewErrorHandler(rt.logger)
	policy := middleware.NewOriginPolicy(rt.opts.AllowedOrigins, rt.opts.PreviewPattern)

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.StripSlashes)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))
	if rt.opts.Tracing != nil {
		router.Use(rt.opts.Tracing)
	}
	if rt.opts.Metrics != nil {
		router.Use(middleware.Metrics(rt.opts.Metrics))
	}

	// CORS: refuse foreign origins before any handler runs
	router.Use(middleware.RejectDisallowedOrigins(policy, rt.logger))
	router.Use(middleware.CORS(policy))
	router.Use(middleware.NoStore)

	if rt.opts.BasePath == "" {
		rt.routes(router, errorHandler)
	} else {
		router.Route(rt.opts.BasePath, func(r chi.Router) {
			rt.routes(r, errorHandler)
		})
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pkgerrors.WriteError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		pkgerrors.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return router
}

func (rt *Router) routes(r chi.Router, errorHandler *pkgerrors.ErrorHandler) {
	// Health check
	r.Get("/healthcheck", rt.healthCheck)
	r.Get("/ready", rt.readinessCheck)
	if rt.opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", rt.opts.MetricsHandler)
	}

	// Knowledge endpoints
	r.Route("/knowledge", func(r chi.Router) {
		knowledgeHandler := handlers.NewKnowledgeHandler(rt.queryBus, errorHandler)
		r.Get("/categories", knowledgeHandler.ListCategories)
		r.Get("/articles", knowledgeHandler.ListArticles)
		r.Get("/articles/{categoryName}", knowledgeHandler.ListArticles)
		r.Get("/article", knowledgeHandler.GetArticle)
		r.Get("/article/{urlName}", knowledgeHandler.GetArticle)
	})

	// Case endpoints
	r.Route("/cases", func(r chi.Router) {
		caseHandler := handlers.NewCaseHandler(rt.commandBus, rt.queryBus, errorHandler)
		r.Get("/", caseHandler.ListCases)
		r.Get("/{email}", caseHandler.ListCases)
		r.Post("/{caseId}/reply", caseHandler.Reply)
	})

	// Search endpoint
	r.Post("/search", handlers.NewSearchHandler(rt.queryBus, errorHandler).Search)
}

// healthCheck answers liveness checks; it never depends on the CRM session
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// readinessCheck reports whether the CRM session is established
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if !rt.session.Ready() {
		pkgerrors.WriteError(w, http.StatusUnauthorized, pkgerrors.NotConnectedMessage)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(api.HealthStatus{Status: "ready"})
}
