package queries

import (
	"time"

	"github.com/google/uuid"
)

// Amounts are decimal strings with two fractional digits.

type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	UserID       uuid.UUID `json:"user_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Hours        int       `json:"hours"`
	Charge       string    `json:"charge"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ReservationPage struct {
	Items      []*ReservationView `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

type ResourceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Capacity    string    `json:"capacity"`
	Players     int       `json:"players"`
	HourlyRate  string    `json:"hourly_rate"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Date       string    `json:"date"`
	Booked     []string  `json:"booked"`
	Free       []string  `json:"free"`
}

type LedgerEntryView struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Kind          string     `json:"kind"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	ExternalRef   *string    `json:"external_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
}

type WalletView struct {
	UserID    uuid.UUID          `json:"user_id"`
	Balance   string             `json:"balance"`
	UpdatedAt time.Time          `json:"updated_at"`
	Entries   []*LedgerEntryView `json:"entries"`
}
