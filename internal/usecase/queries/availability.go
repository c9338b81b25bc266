package queries

import (
	"context"

	"field-rental/internal/domain/reservation"
	"field-rental/internal/infra"

	"github.com/google/uuid"
)

// AvailabilityCache holds display snapshots only. Booking never consults it.
// Get hands out a generation that Set must be given back, so a view loaded
// before an invalidation is never served after it.
type AvailabilityCache interface {
	Get(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) (view *AvailabilityView, generation int64, ok bool)
	Set(ctx context.Context, view *AvailabilityView, generation int64)
}

type BookedRangeReader interface {
	ActiveRangesOn(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) ([]reservation.BookedRange, error)
}

type AvailabilityQueries interface {
	ListAvailability(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	resources ResourceReadStore
	ranges    BookedRangeReader
	cache     AvailabilityCache
}

func NewAvailabilityQueries(resources ResourceReadStore, ranges BookedRangeReader, cache AvailabilityCache) AvailabilityQueries {
	return &availabilityQueriesImpl{resources: resources, ranges: ranges, cache: cache}
}

// ListAvailability answers an unknown resource with a fully free day.
func (q *availabilityQueriesImpl) ListAvailability(ctx context.Context, resourceID uuid.UUID, date reservation.BookingDate) (*AvailabilityView, error) {
	view, gen, ok := q.cache.Get(ctx, resourceID, date)
	if ok {
		return view, nil
	}

	if _, err := q.resources.FindByID(ctx, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return toAvailabilityView(resourceID, reservation.EmptyAvailability(date)), nil
		}
		return nil, err
	}

	ranges, err := q.ranges.ActiveRangesOn(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	view = toAvailabilityView(resourceID, reservation.BuildAvailability(date, ranges))
	q.cache.Set(ctx, view, gen)
	return view, nil
}

func toAvailabilityView(resourceID uuid.UUID, a reservation.Availability) *AvailabilityView {
	return &AvailabilityView{
		ResourceID: resourceID,
		Date:       a.Date().String(),
		Booked:     clockLabels(a.Booked()),
		Free:       clockLabels(a.Free()),
	}
}

func clockLabels(slots []reservation.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ClockLabel())
	}
	return out
}
