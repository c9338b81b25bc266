package components

import (
	"field-rental/internal/infra/memstore"
	"field-rental/internal/infra/query"
	"field-rental/internal/infra/readstore"
	"field-rental/internal/infra/repository"
	"field-rental/internal/infra/uow"
	"field-rental/internal/pkg/config"
	"field-rental/internal/usecase/queries"
	"field-rental/internal/usecase/shared"
	"field-rental/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule binds the unit of work, the read stores and the outbox to one backend.
func PersistenceModule(driver string) fx.Option {
	if driver == config.StoreDriverMemory {
		return memoryModule
	}
	return fx.Module("persistence",
		baseOption,
		readstoreModule,
		repositoryModule,
	)
}

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
	NewTxBeginner,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Resource
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ResourceReadQueries)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationViewQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.BookedRangeReader)),
		),
		// Wallet
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.WalletReadQueries)),
		),
		fx.Annotate(
			readstore.NewWalletReadStore,
			fx.As(new(queries.WalletReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Outbox
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.OutboxQueries)),
		),
		fx.Annotate(
			repository.NewOutboxStore,
			fx.As(new(worker.OutboxStore)),
		),
	),
)

var memoryModule = fx.Module("persistence/memory",
	fx.Provide(
		memstore.New,
		fx.Annotate(
			func(s *memstore.Store) *memstore.Store { return s },
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			memstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			memstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.BookedRangeReader)),
		),
		fx.Annotate(
			memstore.NewWalletReadStore,
			fx.As(new(queries.WalletReadStore)),
		),
		fx.Annotate(
			memstore.NewOutboxStore,
			fx.As(new(worker.OutboxStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *query.Queries {
	return query.New()
}

func NewDBTX(pool *pgxpool.Pool) query.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
