package di

import (
	"context"
	"fmt"
	"net/http"

	"supportportal/application/commands"
	"supportportal/application/commands/bus"
	commandhandlers "supportportal/application/commands/handlers"
	"supportportal/application/ports"
	"supportportal/application/queries"
	querybus "supportportal/application/queries/bus"
	queryhandlers "supportportal/application/queries/handlers"
	"supportportal/application/services"
	"supportportal/infrastructure/config"
	"supportportal/infrastructure/crm"
	"supportportal/infrastructure/llm"
	"supportportal/interfaces/http/rest"
	"supportportal/pkg/observability"
	pkgerrors "supportportal/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// ProvideHTTPClient creates the client used for every outbound call. It carries no
// Timeout: upstream calls are bounded only by the request context, and the login is
// bounded by ProvideSession.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	client := &http.Client{}
	if cfg.EnableTracing {
		return observability.TracedHTTPClient(client)
	}
	return client
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("support_portal")
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("support-portal")
}

// ProvideAuthenticator selects the CRM login flow
func ProvideAuthenticator(cfg *config.Config) (crm.Authenticator, error) {
	c := cfg.CRM
	switch c.AuthFlow {
	case config.AuthFlowJWT:
		auth, err := crm.NewJWTBearerAuthenticator(c.LoginURL, c.ClientID, c.Username, c.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare jwt bearer login: %w", err)
		}
		return auth, nil
	default:
		return crm.NewPasswordAuthenticator(c.LoginURL, c.ClientID, c.ClientSecret, c.Username, c.Password, c.SecurityToken), nil
	}
}

// ProvideSession logs in to the CRM once. A failed login is logged and the service
// keeps running unconnected; session-dependent routes then answer 401.
func ProvideSession(
	ctx context.Context,
	cfg *config.Config,
	auth crm.Authenticator,
	httpClient *http.Client,
	metrics *observability.Collector,
	logger *zap.Logger,
) *crm.Session {
	session := crm.NewSession(auth, httpClient, logger)

	loginCtx, cancel := context.WithTimeout(ctx, cfg.CRM.LoginTimeout)
	defer cancel()

	if err := session.Connect(loginCtx); err != nil {
		logger.Error("CRM login failed, serving without a session",
			zap.String("login_url", cfg.CRM.LoginURL),
			zap.String("auth_flow", cfg.CRM.AuthFlow),
			zap.Error(err),
		)
	}
	metrics.SetSessionConnected(session.Ready())

	return session
}

// ProvideCRMClient creates the CRM REST client
func ProvideCRMClient(session *crm.Session, cfg *config.Config) *crm.Client {
	return crm.NewClient(session, cfg.CRM.APIVersion)
}

// ProvideKnowledgeBase creates the knowledge article adapter
func ProvideKnowledgeBase(client *crm.Client, cfg *config.Config) ports.KnowledgeBase {
	return crm.NewKnowledge(client, crm.KnowledgeOptions{
		ArticleObject: cfg.Knowledge.ArticleObject,
		CategoryGroup: cfg.Knowledge.CategoryGroup,
		Locale:        cfg.Knowledge.Locale,
		CategoryDepth: cfg.Knowledge.CategoryDepth,
	})
}

// ProvideCaseDesk creates the support case adapter
func ProvideCaseDesk(client *crm.Client, cfg *config.Config) ports.CaseDesk {
	return crm.NewCases(client, crm.CaseOptions{
		EmailField:     cfg.Cases.EmailField,
		ClosedStatuses: cfg.Cases.ClosedStatuses,
	})
}

// ProvideLanguageModel creates the Gemini client, or a disabled model without an API key
func ProvideLanguageModel(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *zap.Logger) (ports.LanguageModel, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, search answers are disabled")
		return llm.Disabled{}, nil
	}

	model, err := llm.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, httpClient)
	if err != nil {
		return nil, err
	}
	logger.Info("Language model configured", zap.String("model", model.Name()))
	return model, nil
}

// ProvideAnswerService creates the search answer pipeline
func ProvideAnswerService(knowledge ports.KnowledgeBase, model ports.LanguageModel, logger *zap.Logger) *services.AnswerService {
	return services.NewAnswerService(knowledge, model, logger)
}

// sessionCheck fails fast while no CRM session exists
func sessionCheck(session ports.SessionState) func(context.Context) error {
	return func(context.Context) error {
		if !session.Ready() {
			return pkgerrors.NewNotConnectedError()
		}
		return nil
	}
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) (interface{}, error)
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	cases ports.CaseDesk,
	session ports.SessionState,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.Guard(sessionCheck(session)),
		bus.LoggingMiddleware(&zapLoggerAdapter{logger: logger}),
		bus.MetricsMiddleware(metrics),
		bus.TracingMiddleware(tracer),
	)

	replyHandler := commandhandlers.NewReplyToCaseHandler(cases, logger)
	if err := commandBus.Register(commands.ReplyToCaseCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			replyCmd, ok := cmd.(commands.ReplyToCaseCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return replyHandler.Handle(ctx, replyCmd)
		},
	}); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	cfg *config.Config,
	knowledge ports.KnowledgeBase,
	cases ports.CaseDesk,
	answers *services.AnswerService,
	session ports.SessionState,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.Guard(sessionCheck(session)),
		querybus.LoggingMiddleware(&zapLoggerAdapter{logger: logger}),
		querybus.MetricsMiddleware(metrics),
		querybus.TracingMiddleware(tracer),
	)

	// Register ListCategoriesQuery handler
	categoriesHandler := queryhandlers.NewListCategoriesHandler(knowledge, cfg.Knowledge.CategoryGroup, logger)
	if err := queryBus.Register(queries.ListCategoriesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListCategoriesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return categoriesHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register ListArticlesQuery handler
	articlesHandler := queryhandlers.NewListArticlesHandler(knowledge, logger)
	if err := queryBus.Register(queries.ListArticlesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListArticlesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return articlesHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register GetArticleQuery handler
	articleHandler := queryhandlers.NewGetArticleHandler(knowledge)
	if err := queryBus.Register(queries.GetArticleQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetArticleQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return articleHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register ListCasesQuery handler
	casesHandler := queryhandlers.NewListCasesHandler(cases)
	if err := queryBus.Register(queries.ListCasesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListCasesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return casesHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	// Register SearchArticlesQuery handler
	searchHandler := queryhandlers.NewSearchArticlesHandler(answers)
	if err := queryBus.Register(queries.SearchArticlesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.SearchArticlesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return searchHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	session ports.SessionState,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *chi.Mux {
	opts := rest.Options{
		BasePath:       cfg.BasePath,
		AllowedOrigins: cfg.AllowedOrigins,
		PreviewPattern: cfg.PreviewOriginPattern,
	}
	if cfg.EnableMetrics {
		opts.Metrics = metrics
		opts.MetricsHandler = metrics.Handler()
	}
	if cfg.EnableTracing {
		opts.Tracing = tracer.Middleware
	}

	return rest.NewRouter(commandBus, queryBus, session, opts, logger).Setup()
}

// zapLoggerAdapter adapts zap.Logger to the bus.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, _ := fields[i].(string)
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}
	}
	return zapFields
}
