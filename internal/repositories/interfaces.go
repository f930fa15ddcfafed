package repositories

import (
	"context"
	"time"

	"ihome-rentals/internal/models"
)

// HouseFilter selects and orders houses for one listing page.
type HouseFilter struct {
	AreaID     *int64
	ExcludeIDs []int64
	SortKey    string
	Offset     int
	Limit      int
}

type HouseRepository interface {
	FindByID(ctx context.Context, id int64) (*models.House, error)
	FindDetail(ctx context.Context, id int64, commentLimit int) (*models.HouseDetailRecord, error)
	// Search returns one page of houses matching filter and the total number of matches.
	Search(ctx context.Context, filter HouseFilter) ([]models.HouseRow, int, error)
	TopByOrderCount(ctx context.Context, limit int) ([]models.HouseRow, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.HouseRow, error)
	Create(ctx context.Context, house *models.House, facilityIDs []int64) error
}

type OrderRepository interface {
	// CountConflicts counts orders of the house whose inclusive range overlaps [begin, end].
	CountConflicts(ctx context.Context, houseID int64, begin, end time.Time) (int, error)
	// ConflictingHouseIDs returns the houses having any order that overlaps the window.
	// A nil bound leaves that side of the window open.
	ConflictingHouseIDs(ctx context.Context, start, end *time.Time) ([]int64, error)
	Create(ctx context.Context, order *models.Order) error
	// CreateIfAvailable locks the house row, re-checks conflicts and inserts in one transaction.
	CreateIfAvailable(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	ListByRenter(ctx context.Context, renterID int64) ([]models.OrderRow, error)
	ListByLandlord(ctx context.Context, ownerID int64) ([]models.OrderRow, error)
	// UpdateStatus moves the order from one status to another, storing comment when non-empty.
	UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus, comment string) error
	// Complete stores the review, marks the order COMPLETE and bumps the house order_count atomically.
	Complete(ctx context.Context, id, houseID int64, comment string) error
}

type AreaRepository interface {
	FindAll(ctx context.Context) ([]models.Area, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// HouseCache is the Redis side channel for serialized projections. Absent
// entries are reported as cache.ErrCacheMiss.
type HouseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetField(ctx context.Context, key, field string) ([]byte, error)
	SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error
	InvalidateHouse(ctx context.Context, houseID int64) error
}
