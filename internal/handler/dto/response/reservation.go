package response

import (
	"time"

	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	UserID       uuid.UUID `json:"userId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Hours        int       `json:"hours"`
	Charge       string    `json:"charge"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

type CreateReservationResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Replayed      bool      `json:"replayed"`
}

type AcceptReservationResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Status        string    `json:"status"`
	Charge        string    `json:"charge"`
	Balance       string    `json:"balance"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, v)
	return resp
}

func FromReservationPage(p *queries.ReservationPage) *ReservationPageResponse {
	items := make([]*ReservationResponse, 0, len(p.Items))
	for _, v := range p.Items {
		items = append(items, FromReservationView(v))
	}
	return &ReservationPageResponse{Items: items, NextCursor: p.NextCursor}
}

func FromCreateResult(r *commands.CreateReservationResult) *CreateReservationResponse {
	return &CreateReservationResponse{ReservationID: r.ReservationID, Replayed: r.IsReplayed}
}

func FromAcceptResult(r *commands.AcceptReservationResult) *AcceptReservationResponse {
	return &AcceptReservationResponse{
		ReservationID: r.ReservationID,
		Status:        "accepted",
		Charge:        r.Charge.String(),
		Balance:       r.Balance.String(),
	}
}
