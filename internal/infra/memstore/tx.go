package memstore

import (
	"context"
	"time"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	st *state
}

func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t.st} }
func (t *memTx) Resources() shared.ResourceRepository         { return resourceRepo{t.st} }
func (t *memTx) Wallets() shared.WalletRepository             { return walletRepo{t.st} }
func (t *memTx) Ledger() shared.LedgerRepository              { return ledgerRepo{t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{t.st} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{t.st} }
func (t *memTx) Reads() shared.CommandReads                   { return commandReads{t.st} }

// LockResourceDay has nothing to do: the transaction already excludes every other writer.
func (t *memTx) LockResourceDay(ctx context.Context, _ uuid.UUID, _ reservation.BookingDate) error {
	return ctx.Err()
}

type reservationRepo struct{ st *state }

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.st.resources[res.ResourceID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "reservation references unknown resource")
	}
	if _, ok := r.st.reservations[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists")
	}

	iv := res.Interval()
	for _, other := range r.st.reservations {
		if other.resourceID != res.ResourceID() || !other.date.Equal(iv.Date()) || !other.status.IsActive() {
			continue
		}
		if iv.StartHour() < other.endHour && other.startHour < iv.EndHour() {
			return infra.NewRepoErr(infra.KindConflict, "overlapping active reservation")
		}
	}

	r.st.reservations[res.ID()] = reservationRow{
		id:         res.ID(),
		resourceID: res.ResourceID(),
		userID:     res.UserID(),
		date:       iv.Date(),
		startHour:  iv.StartHour(),
		endHour:    iv.EndHour(),
		charge:     res.Charge(),
		status:     res.Status(),
		createdAt:  pgTime(res.CreatedAt()),
		updatedAt:  pgTime(res.UpdatedAt()),
	}
	return nil
}

func (r reservationRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to reservation.Status, at time.Time) (bool, error) {
	row, ok := r.st.reservations[id]
	if !ok || row.status != from {
		return false, nil
	}
	row.status = to
	row.updatedAt = pgTime(at)
	r.st.reservations[id] = row
	return true, nil
}

func (r reservationRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.st.reservations[id]; !ok {
		return false, nil
	}
	delete(r.st.reservations, id)
	return true, nil
}

type resourceRepo struct{ st *state }

func (r resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if _, ok := r.st.resources[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "resource already exists")
	}
	r.st.resources[res.ID()] = toResourceRow(res)
	return nil
}

func (r resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	if _, ok := r.st.resources[res.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	r.st.resources[res.ID()] = toResourceRow(res)
	return nil
}

func (r resourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.resources[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "resource not found")
	}
	delete(r.st.resources, id)
	for rid, row := range r.st.reservations {
		if row.resourceID == id {
			delete(r.st.reservations, rid)
		}
	}
	return nil
}

func toResourceRow(res *resource.Resource) resourceRow {
	return resourceRow{
		id: res.ID(),
		details: resource.Details{
			Name:        res.Name(),
			Location:    res.Location(),
			Capacity:    res.Capacity(),
			HourlyRate:  res.HourlyRate(),
			Description: res.Description(),
			ImageURL:    res.ImageURL(),
		},
		createdAt: pgTime(res.CreatedAt()),
		updatedAt: pgTime(res.UpdatedAt()),
	}
}

type walletRepo struct{ st *state }

func (r walletRepo) EnsureExists(_ context.Context, userID uuid.UUID, now time.Time) error {
	if _, ok := r.st.wallets[userID]; ok {
		return nil
	}
	w, err := wallet.NewWallet(userID, now)
	if err != nil {
		return err
	}
	r.st.wallets[userID] = walletRow{userID: userID, balance: w.Balance(), updatedAt: pgTime(now)}
	return nil
}

func (r walletRepo) SaveBalance(_ context.Context, w *wallet.Wallet) error {
	row, ok := r.st.wallets[w.UserID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "wallet not found")
	}
	if row.version != w.Version() {
		return infra.NewRepoErr(infra.KindConflict, "wallet version changed")
	}
	row.balance = w.Balance()
	row.version++
	row.updatedAt = pgTime(w.UpdatedAt())
	r.st.wallets[w.UserID()] = row
	return nil
}

type ledgerRepo struct{ st *state }

func (r ledgerRepo) Append(_ context.Context, e *wallet.Entry) error {
	if _, ok := r.st.wallets[e.UserID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "ledger entry references unknown wallet")
	}
	if ref := e.ExternalRef(); ref != nil {
		if _, dup := r.st.externalRefs[*ref]; dup {
			return infra.NewRepoErr(infra.KindDuplicateKey, "external reference already recorded")
		}
		r.st.externalRefs[*ref] = e.ID()
	}

	var confirmedAt *time.Time
	if at := e.ConfirmedAt(); at != nil {
		t := pgTime(*at)
		confirmedAt = &t
	}
	r.st.entries[e.ID()] = entryRow{
		id:            e.ID(),
		userID:        e.UserID(),
		kind:          e.Kind(),
		amount:        e.Amount(),
		status:        e.Status(),
		reservationID: e.ReservationID(),
		externalRef:   e.ExternalRef(),
		createdAt:     pgTime(e.CreatedAt()),
		confirmedAt:   confirmedAt,
	}
	return nil
}

func (r ledgerRepo) Confirm(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	row, ok := r.st.entries[id]
	if !ok || row.status != wallet.EntryPending {
		return false, nil
	}
	t := pgTime(at)
	row.status = wallet.EntryConfirmed
	row.confirmedAt = &t
	r.st.entries[id] = row
	return true, nil
}

type idempotencyRepo struct{ st *state }

func (r idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error) {
	k := idemKey{key: key, userID: userID}
	if existing, ok := r.st.idempotency[k]; ok && existing.record.ExpiresAt.After(now) {
		return false, nil
	}
	r.st.idempotency[k] = idemRow{
		record: shared.IdempotencyRecord{
			Key:         key,
			UserID:      userID,
			Status:      shared.IdempotencyProcessing,
			RequestHash: requestHash,
			ExpiresAt:   expiresAt,
		},
		endpoint:  endpoint,
		createdAt: now,
	}
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, key, userID uuid.UUID, reservationID uuid.UUID) error {
	k := idemKey{key: key, userID: userID}
	row, ok := r.st.idempotency[k]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "idempotency key not found")
	}
	row.record.Status = shared.IdempotencyCompleted
	row.record.ResultReservationID = &reservationID
	r.st.idempotency[k] = row
	return nil
}

type notificationRepo struct{ st *state }

func (r notificationRepo) CreateJob(_ context.Context, topic string, payload []byte, runAt time.Time) error {
	id := uuid.New()
	r.st.jobs[id] = jobRow{
		id:        id,
		topic:     topic,
		payload:   payload,
		status:    shared.OutboxQueued,
		runAt:     pgTime(runAt),
		createdAt: pgTime(runAt),
	}
	return nil
}
