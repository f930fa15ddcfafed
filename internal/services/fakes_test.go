package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/mock"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/internal/transformers"
	"ihome-rentals/internal/validators"
	"ihome-rentals/pkg/cache"
)

// memStore is an in-memory stand-in for the MySQL tables the services touch.
type memStore struct {
	mu          sync.Mutex
	houses      map[int64]*models.House
	orders      map[int64]*models.Order
	areas       []models.Area
	nextOrderID int64
	searches    int
}

func newMemStore() *memStore {
	return &memStore{
		houses:      make(map[int64]*models.House),
		orders:      make(map[int64]*models.Order),
		nextOrderID: 1,
	}
}

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func (s *memStore) addHouse(h models.House) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.CreateTime.IsZero() {
		h.CreateTime = day("2024-01-01").Add(time.Duration(h.ID) * time.Hour)
	}
	s.houses[h.ID] = &h
}

func (s *memStore) addOrder(o models.Order) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextOrderID
	s.nextOrderID++
	s.orders[o.ID] = &o
	return o.ID
}

func (s *memStore) order(id int64) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

func (s *memStore) house(id int64) models.House {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.houses[id]
}

func (s *memStore) searchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches
}

type memHouses struct{ *memStore }

type memOrders struct{ *memStore }

type memAreas struct{ *memStore }

func (r memHouses) FindByID(ctx context.Context, id int64) (*models.House, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.houses[id]
	if !ok {
		return nil, fmt.Errorf("house %d: %w", id, apperrors.ErrNotFound)
	}
	cp := *h
	return &cp, nil
}

func (r memHouses) FindDetail(ctx context.Context, id int64, commentLimit int) (*models.HouseDetailRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.houses[id]
	if !ok {
		return nil, fmt.Errorf("house %d: %w", id, apperrors.ErrNotFound)
	}
	rec := &models.HouseDetailRecord{House: *h, Owner: models.User{ID: h.UserID, Name: fmt.Sprintf("owner-%d", h.UserID)}}
	for _, o := range r.orders {
		if o.HouseID == id && o.Status == models.StatusComplete && len(rec.Comments) < commentLimit {
			rec.Comments = append(rec.Comments, models.CommentRow{UserName: "renter", Content: o.Comment, CreateTime: o.CreateTime})
		}
	}
	return rec, nil
}

func (r memHouses) Search(ctx context.Context, filter repositories.HouseFilter) ([]models.HouseRow, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++

	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	var matches []models.HouseRow
	for _, h := range r.houses {
		if excluded[h.ID] || (filter.AreaID != nil && h.AreaID != *filter.AreaID) {
			continue
		}
		matches = append(matches, models.HouseRow{House: *h})
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch filter.SortKey {
		case models.SortPriceInc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case models.SortPriceDes:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case models.SortBooking:
			if a.OrderCount != b.OrderCount {
				return a.OrderCount > b.OrderCount
			}
		default:
			if !a.CreateTime.Equal(b.CreateTime) {
				return a.CreateTime.After(b.CreateTime)
			}
		}
		return a.ID > b.ID
	})

	total := len(matches)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matches[filter.Offset:end], total, nil
}

func (r memHouses) TopByOrderCount(ctx context.Context, limit int) ([]models.HouseRow, error) {
	rows, _, err := r.Search(ctx, repositories.HouseFilter{SortKey: models.SortBooking, Limit: limit})
	return rows, err
}

func (r memHouses) ListByOwner(ctx context.Context, ownerID int64) ([]models.HouseRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []models.HouseRow
	for _, h := range r.houses {
		if h.UserID == ownerID {
			rows = append(rows, models.HouseRow{House: *h})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (r memHouses) Create(ctx context.Context, house *models.House, facilityIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	house.ID = int64(len(r.houses) + 1)
	cp := *house
	r.houses[house.ID] = &cp
	return nil
}

func (r memOrders) countConflicts(houseID int64, begin, end time.Time) int {
	count := 0
	for _, o := range r.orders {
		if o.HouseID == houseID && Overlaps(o.BeginDate, o.EndDate, begin, end) {
			count++
		}
	}
	return count
}

func (r memOrders) CountConflicts(ctx context.Context, houseID int64, begin, end time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countConflicts(houseID, begin, end), nil
}

func (r memOrders) ConflictingHouseIDs(ctx context.Context, start, end *time.Time) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[int64]bool)
	var ids []int64
	for _, o := range r.orders {
		if start != nil && o.EndDate.Before(*start) {
			continue
		}
		if end != nil && o.BeginDate.After(*end) {
			continue
		}
		if !seen[o.HouseID] {
			seen[o.HouseID] = true
			ids = append(ids, o.HouseID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r memOrders) insert(order *models.Order) {
	order.ID = r.nextOrderID
	r.nextOrderID++
	cp := *order
	r.orders[order.ID] = &cp
}

func (r memOrders) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(order)
	return nil
}

func (r memOrders) CreateIfAvailable(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.houses[order.HouseID]; !ok {
		return fmt.Errorf("house %d: %w", order.HouseID, apperrors.ErrNotFound)
	}
	if r.countConflicts(order.HouseID, order.BeginDate, order.EndDate) > 0 {
		return fmt.Errorf("house %d: %w", order.HouseID, apperrors.ErrDateConflict)
	}
	r.insert(order)
	return nil
}

func (r memOrders) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, apperrors.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (r memOrders) list(match func(o *models.Order) bool) []models.OrderRow {
	var rows []models.OrderRow
	for _, o := range r.orders {
		if match(o) {
			rows = append(rows, models.OrderRow{Order: *o, HouseTitle: r.houses[o.HouseID].Title})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows
}

func (r memOrders) ListByRenter(ctx context.Context, renterID int64) ([]models.OrderRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(o *models.Order) bool { return o.UserID == renterID }), nil
}

func (r memOrders) ListByLandlord(ctx context.Context, ownerID int64) ([]models.OrderRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(o *models.Order) bool { return r.houses[o.HouseID].UserID == ownerID }), nil
}

func (r memOrders) updateStatus(id int64, from, to models.OrderStatus, comment string) error {
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return fmt.Errorf("order %d no longer %s: %w", id, from, apperrors.ErrStaleState)
	}
	o.Status = to
	if comment != "" {
		o.Comment = comment
	}
	return nil
}

func (r memOrders) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateStatus(id, from, to, comment)
}

func (r memOrders) Complete(ctx context.Context, id, houseID int64, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateStatus(id, models.StatusWaitComment, models.StatusComplete, comment); err != nil {
		return err
	}
	r.houses[houseID].OrderCount++
	return nil
}

func (r memAreas) FindAll(ctx context.Context) ([]models.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Area(nil), r.areas...), nil
}

// MockHouseCache is a testify mock of the Redis side channel.
type MockHouseCache struct {
	mock.Mock
}

func (m *MockHouseCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHouseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockHouseCache) GetField(ctx context.Context, key, field string) ([]byte, error) {
	args := m.Called(ctx, key, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockHouseCache) SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, field, value, ttl)
	return args.Error(0)
}

func (m *MockHouseCache) InvalidateHouse(ctx context.Context, houseID int64) error {
	args := m.Called(ctx, houseID)
	return args.Error(0)
}

// newRedisCache returns a HouseCache backed by miniredis.
func newRedisCache(t *testing.T) (repositories.HouseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = rdb.Close() })
	return repositories.NewHouseCache(cache.NewClient(rdb, 5, time.Minute)), mr
}

var testHouseSettings = HouseSettings{
	AreaInfoTTL:          2 * time.Hour,
	HouseDetailTTL:       2 * time.Hour,
	HouseListTTL:         time.Hour,
	HomePageTTL:          2 * time.Hour,
	HomePageMaxHouses:    5,
	DetailCommentDisplay: 30,
}

func newTestHouseService(store *memStore, hc repositories.HouseCache, pageSize int) *HouseService {
	houses := memHouses{store}
	trans := transformers.NewHouseTransformer("")
	planner := NewListingPlanner(houses, NewAvailabilityChecker(memOrders{store}), trans, pageSize)
	return NewHouseService(houses, memAreas{store}, planner, NewCacheAside(hc), trans,
		validators.NewListingValidator(), validators.NewHouseValidator(), testHouseSettings)
}

func newTestOrderService(store *memStore, hc repositories.HouseCache, lockHouseRow bool) *OrderService {
	orders := memOrders{store}
	return NewOrderService(orders, memHouses{store}, NewAvailabilityChecker(orders), hc,
		validators.NewOrderValidator(), transformers.NewOrderTransformer(""), lockHouseRow)
}
