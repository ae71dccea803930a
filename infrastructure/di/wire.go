//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"supportportal/application/commands/bus"
	"supportportal/application/ports"
	querybus "supportportal/application/queries/bus"
	"supportportal/infrastructure/config"
	"supportportal/infrastructure/crm"
	"supportportal/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Session    *crm.Session
	Metrics    *observability.Collector
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     *chi.Mux
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideHTTPClient,
	ProvideMetrics,
	ProvideTracer,
	ProvideAuthenticator,
	ProvideSession,
	wire.Bind(new(ports.SessionState), new(*crm.Session)),
	ProvideCRMClient,
	ProvideKnowledgeBase,
	ProvideCaseDesk,
	ProvideLanguageModel,
	ProvideAnswerService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
