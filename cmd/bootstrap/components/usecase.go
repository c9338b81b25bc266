package components

import (
	"field-rental/internal/domain/reservation"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/config"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"
	"field-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewHourlyRateCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(clock clock.Clock, calc reservation.PriceCalculator) *reservation.Services {
		return &reservation.Services{
			Clock:           clock,
			PriceCalculator: calc,
		}
	},
	NewReservationFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSettlement,
		NewReservationCommands,
		commands.NewResourceCommands,
		commands.NewWalletCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewResourceQueries,
		queries.NewWalletQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// NewReservationFactory decides "today" in the booking time zone.
func NewReservationFactory(services *reservation.Services, cfg config.Config) (*reservation.Factory, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, err
	}
	return reservation.NewFactory(services, loc), nil
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	settlement *commands.Settlement,
	invalidator commands.AvailabilityInvalidator,
	m *metrics.Metrics,
	cfg config.Config,
) commands.ReservationCommands {
	return commands.NewReservationCommands(uow, factory, settlement, invalidator, m, cfg.Booking.IdempotencyTTL)
}
