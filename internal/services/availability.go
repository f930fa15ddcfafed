package services

import (
	"context"
	"time"

	"ihome-rentals/internal/repositories"
)

// Overlaps reports whether the inclusive ranges [b1, e1] and [b2, e2] share a day.
func Overlaps(b1, e1, b2, e2 time.Time) bool {
	return !b1.After(e2) && !b2.After(e1)
}

// AvailabilityChecker answers overlap questions against the stored orders.
type AvailabilityChecker struct {
	orders repositories.OrderRepository
}

func NewAvailabilityChecker(orders repositories.OrderRepository) *AvailabilityChecker {
	return &AvailabilityChecker{orders: orders}
}

// ConflictExists reports whether any order of the house overlaps [begin, end].
func (a *AvailabilityChecker) ConflictExists(ctx context.Context, houseID int64, begin, end time.Time) (bool, error) {
	count, err := a.orders.CountConflicts(ctx, houseID, begin, end)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConflictingHouseIDs returns the houses unavailable for the window. Either bound may be nil.
func (a *AvailabilityChecker) ConflictingHouseIDs(ctx context.Context, start, end *time.Time) ([]int64, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	return a.orders.ConflictingHouseIDs(ctx, start, end)
}
