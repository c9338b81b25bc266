package bootstrap

import (
	"field-rental/cmd/bootstrap/components"
	"field-rental/internal/pkg/config"

	"go.uber.org/fx"
)

// NewModule assembles the application. The store driver decides whether a Postgres pool is opened.
func NewModule(cfg config.Config) fx.Option {
	opts := []fx.Option{
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		components.InfraModule,
		components.PersistenceModule(cfg.Store.Driver),
		components.UseCaseModule,
		components.WorkerModule,
		components.HandlerModule,
	}
	if cfg.Store.Driver == config.StoreDriverPostgres {
		opts = append(opts, DBModule)
	}
	return fx.Options(opts...)
}
