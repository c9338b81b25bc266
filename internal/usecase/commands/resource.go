package commands

import (
	"context"
	"log/slog"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/domain/resource"
	"field-rental/internal/pkg/clock"
	"field-rental/internal/pkg/errs"
	"field-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceCommands interface {
	Create(ctx context.Context, d resource.Details) (uuid.UUID, error)
	// Update changes future pricing only; existing reservations keep their stored charge.
	Update(ctx context.Context, id uuid.UUID, p resource.Patch) error
	// Delete refuses while a pending or accepted reservation is booked for today or later.
	// Past and rejected reservations are removed with the resource; their ledger entries stay.
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	factory *reservation.Factory
}

func NewResourceCommands(uow shared.UnitOfWork, factory *reservation.Factory) ResourceCommands {
	return &resourceCommandsImpl{uow: uow, clock: factory.Clock(), factory: factory}
}

func (c *resourceCommandsImpl) Create(ctx context.Context, d resource.Details) (uuid.UUID, error) {
	r, err := resource.NewResource(d, c.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, r)
	})
	if err != nil {
		return uuid.Nil, translate(err, nil)
	}

	slog.InfoContext(ctx, "resource created", "resource_id", r.ID(), "name", r.Name())
	return r.ID(), nil
}

func (c *resourceCommandsImpl) Update(ctx context.Context, id uuid.UUID, p resource.Patch) error {
	return translate(c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reads().ResourceByID(ctx, id)
		if err != nil {
			return translate(err, ErrResourceNotFound)
		}

		changed, err := r.Apply(p, c.clock.Now())
		if err != nil || !changed {
			return err
		}
		return tx.Resources().Update(ctx, r)
	}), nil)
}

func (c *resourceCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock makes a concurrent booking wait on its foreign key check.
		if _, err := tx.Reads().ResourceForUpdate(ctx, id); err != nil {
			return translate(err, ErrResourceNotFound)
		}

		busy, err := tx.Reads().HasActiveReservationsFrom(ctx, id, c.factory.Today())
		if err != nil {
			return err
		}
		if busy {
			return errs.Wrapf(ErrResourceInUse, "resource %s", id)
		}
		return tx.Resources().Delete(ctx, id)
	})
	if err != nil {
		return translate(err, ErrResourceNotFound)
	}

	slog.InfoContext(ctx, "resource deleted", "resource_id", id)
	return nil
}
