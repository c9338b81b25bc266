package commands

import (
	"context"
	"log/slog"
	"time"

	"field-rental/internal/domain/money"
	"field-rental/internal/domain/wallet"
	"field-rental/internal/infra"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/pkg/metrics"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var errTopUpAlreadyApplied = errs.New("top-up already applied")

type TopUpInput struct {
	UserID      uuid.UUID
	Amount      money.Money
	ExternalRef string
}

type CreditResult struct {
	EntryID        uuid.UUID
	UserID         uuid.UUID
	Balance        money.Money
	AlreadyApplied bool
}

type WalletCommands interface {
	RequestDeposit(ctx context.Context, userID uuid.UUID, amount money.Money) (uuid.UUID, error)
	ConfirmDeposit(ctx context.Context, entryID, operatorID uuid.UUID) (*CreditResult, error)
	// CreditTopUp is idempotent on the provider reference.
	CreditTopUp(ctx context.Context, in TopUpInput) (*CreditResult, error)
}

type walletCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *metrics.Metrics
}

func NewWalletCommands(uow shared.UnitOfWork, clk clock.Clock, m *metrics.Metrics) WalletCommands {
	return &walletCommandsImpl{uow: uow, clock: clk, metrics: m}
}

func (c *walletCommandsImpl) RequestDeposit(ctx context.Context, userID uuid.UUID, amount money.Money) (uuid.UUID, error) {
	now := c.clock.Now()
	entry, err := wallet.NewDepositRequest(userID, amount, now)
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if werr := tx.Wallets().EnsureExists(ctx, userID, now); werr != nil {
			return werr
		}
		return tx.Ledger().Append(ctx, entry)
	})
	if err != nil {
		return uuid.Nil, translate(err, nil)
	}

	slog.InfoContext(ctx, "deposit requested", "entry_id", entry.ID(), "user_id", userID, "amount", amount.String())
	return entry.ID(), nil
}

func (c *walletCommandsImpl) ConfirmDeposit(ctx context.Context, entryID, operatorID uuid.UUID) (*CreditResult, error) {
	var result *CreditResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entry, lerr := tx.Reads().LedgerEntryForUpdate(ctx, entryID)
		if lerr != nil {
			return translate(lerr, ErrDepositNotFound)
		}

		now := c.clock.Now()
		if derr := entry.Confirm(now); derr != nil {
			if errs.Is(derr, wallet.ErrNotADeposit) {
				return errs.Mark(derr, ErrDepositNotFound)
			}
			return derr
		}

		ok, cerr := tx.Ledger().Confirm(ctx, entry.ID(), now)
		if cerr != nil {
			return cerr
		}
		if !ok {
			return wallet.ErrDepositAlreadyConfirmed
		}

		balance, cerr := credit(ctx, tx, entry, now)
		if cerr != nil {
			return cerr
		}
		result = &CreditResult{EntryID: entry.ID(), UserID: entry.UserID(), Balance: balance}
		return nil
	})
	if err != nil {
		return nil, translate(err, nil)
	}

	slog.InfoContext(ctx, "deposit confirmed",
		"entry_id", entryID,
		"operator_id", operatorID,
		"user_id", result.UserID,
		"balance", result.Balance.String())
	return result, nil
}

func (c *walletCommandsImpl) CreditTopUp(ctx context.Context, in TopUpInput) (*CreditResult, error) {
	now := c.clock.Now()
	entry, err := wallet.NewTopUpEntry(in.UserID, in.Amount, in.ExternalRef, now)
	if err != nil {
		return nil, err
	}

	var result *CreditResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if werr := tx.Wallets().EnsureExists(ctx, in.UserID, now); werr != nil {
			return werr
		}
		if aerr := tx.Ledger().Append(ctx, entry); aerr != nil {
			if infra.IsKind(aerr, infra.KindDuplicateKey) {
				return errs.Mark(aerr, errTopUpAlreadyApplied)
			}
			return aerr
		}

		balance, cerr := credit(ctx, tx, entry, now)
		if cerr != nil {
			return cerr
		}
		result = &CreditResult{EntryID: entry.ID(), UserID: in.UserID, Balance: balance}
		return nil
	})
	if errs.Is(err, errTopUpAlreadyApplied) {
		c.metrics.TopUpsProcessed.WithLabelValues("duplicate").Inc()
		slog.InfoContext(ctx, "top-up already applied", "external_ref", in.ExternalRef, "user_id", in.UserID)
		return &CreditResult{UserID: in.UserID, AlreadyApplied: true}, nil
	}
	if err != nil {
		c.metrics.TopUpsProcessed.WithLabelValues("error").Inc()
		return nil, translate(err, nil)
	}

	c.metrics.TopUpsProcessed.WithLabelValues("credited").Inc()
	slog.InfoContext(ctx, "top-up credited",
		"external_ref", in.ExternalRef,
		"user_id", in.UserID,
		"amount", in.Amount.String(),
		"balance", result.Balance.String())
	return result, nil
}

// credit applies a confirmed entry to its wallet, creating the wallet if needed.
func credit(ctx context.Context, tx shared.Tx, entry *wallet.Entry, now time.Time) (money.Money, error) {
	if err := tx.Wallets().EnsureExists(ctx, entry.UserID(), now); err != nil {
		return money.Money{}, err
	}
	w, err := tx.Reads().WalletForUpdate(ctx, entry.UserID())
	if err != nil {
		return money.Money{}, translate(err, wallet.ErrWalletNotFound)
	}
	if err = w.Credit(entry.Amount(), now); err != nil {
		return money.Money{}, err
	}
	if err = tx.Wallets().SaveBalance(ctx, w); err != nil {
		return money.Money{}, translate(err, wallet.ErrWalletNotFound)
	}

	event := WalletCreditedEvent{
		UserID:     entry.UserID(),
		EntryID:    entry.ID(),
		Kind:       string(entry.Kind()),
		Amount:     entry.Amount().String(),
		Balance:    w.Balance().String(),
		OccurredAt: now,
	}
	if err = enqueue(ctx, tx, shared.TopicWalletCredited, event, now); err != nil {
		return money.Money{}, err
	}
	return w.Balance(), nil
}
