package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Resources struct {
	ID          uuid.UUID
	Name        string
	Location    string
	Capacity    string
	HourlyRate  pgtype.Numeric
	Description string
	ImageUrl    string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Reservations struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	UserID      uuid.UUID
	BookingDate pgtype.Date
	StartHour   int16
	EndHour     int16
	Charge      pgtype.Numeric
	Status      string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Wallets struct {
	UserID    uuid.UUID
	Balance   pgtype.Numeric
	Version   int64
	UpdatedAt pgtype.Timestamptz
}

type WalletEntries struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Kind          string
	Amount        pgtype.Numeric
	Status        string
	ReservationID pgtype.UUID
	ExternalRef   pgtype.Text
	CreatedAt     pgtype.Timestamptz
	ConfirmedAt   pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultReservationID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
}

type NotificationJobs struct {
	ID        uuid.UUID
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int32
	RunAt     pgtype.Timestamptz
	LastError pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
