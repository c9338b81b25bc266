package response

import (
	"time"

	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LedgerEntryResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	Kind          string     `json:"kind"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	ExternalRef   *string    `json:"externalRef,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
}

type WalletResponse struct {
	UserID    uuid.UUID              `json:"userId"`
	Balance   string                 `json:"balance"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Entries   []*LedgerEntryResponse `json:"entries"`
}

type CreditResponse struct {
	EntryID uuid.UUID `json:"entryId"`
	UserID  uuid.UUID `json:"userId"`
	Balance string    `json:"balance"`
}

func FromWalletView(v *queries.WalletView) *WalletResponse {
	resp := &WalletResponse{}
	_ = copier.CopyWithOption(resp, v, copier.Option{DeepCopy: true})
	if resp.Entries == nil {
		resp.Entries = []*LedgerEntryResponse{}
	}
	return resp
}

func FromLedgerEntries(vs []*queries.LedgerEntryView) []*LedgerEntryResponse {
	out := make([]*LedgerEntryResponse, 0, len(vs))
	for _, v := range vs {
		e := &LedgerEntryResponse{}
		_ = copier.Copy(e, v)
		out = append(out, e)
	}
	return out
}

func FromCreditResult(r *commands.CreditResult) *CreditResponse {
	return &CreditResponse{EntryID: r.EntryID, UserID: r.UserID, Balance: r.Balance.String()}
}
