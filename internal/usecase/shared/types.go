package shared

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              IdempotencyStatus
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

// Outbox topics double as routing keys on the events exchange.
const (
	TopicReservationCreated  = "reservation.created"
	TopicReservationAccepted = "reservation.accepted"
	TopicReservationRejected = "reservation.rejected"
	TopicReservationDeleted  = "reservation.deleted"
	TopicWalletCredited      = "wallet.credited"
)

type OutboxStatus string

const (
	OutboxQueued     OutboxStatus = "queued"
	OutboxProcessing OutboxStatus = "processing"
	OutboxSent       OutboxStatus = "sent"
	OutboxFailed     OutboxStatus = "failed"
)

type OutboxJob struct {
	ID       uuid.UUID
	Topic    string
	Payload  []byte
	Attempts int
	RunAt    time.Time
}
