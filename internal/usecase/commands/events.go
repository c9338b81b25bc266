package commands

import (
	"context"
	"encoding/json"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationEvent struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	ResourceID    uuid.UUID  `json:"resource_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Date          string     `json:"date"`
	StartHour     int        `json:"start_hour"`
	EndHour       int        `json:"end_hour"`
	Charge        string     `json:"charge"`
	Status        string     `json:"status"`
	OperatorID    *uuid.UUID `json:"operator_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

type WalletCreditedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	EntryID    uuid.UUID `json:"entry_id"`
	Kind       string    `json:"kind"`
	Amount     string    `json:"amount"`
	Balance    string    `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

func reservationEvent(r *reservation.Reservation, operatorID *uuid.UUID, at time.Time) ReservationEvent {
	return ReservationEvent{
		ReservationID: r.ID(),
		ResourceID:    r.ResourceID(),
		UserID:        r.UserID(),
		Date:          r.Date().String(),
		StartHour:     r.Interval().StartHour(),
		EndHour:       r.Interval().EndHour(),
		Charge:        r.Charge().String(),
		Status:        r.Status().String(),
		OperatorID:    operatorID,
		OccurredAt:    at,
	}
}

func enqueue(ctx context.Context, tx shared.Tx, topic string, event any, at time.Time) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, topic, payload, at)
}
