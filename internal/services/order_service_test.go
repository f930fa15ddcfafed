package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/pkg/cache"
)

const (
	landlordID int64 = 100
	renterID   int64 = 200
	otherID    int64 = 300
)

// bookedStore holds house 1 (price 10000, owned by the landlord) with one
// order for 2024-01-10..2024-01-15.
func bookedStore() (*memStore, int64) {
	store := newMemStore()
	store.addHouse(models.House{ID: 1, UserID: landlordID, AreaID: 1, Title: "Loft", Price: 10000})
	id := store.addOrder(models.Order{
		HouseID: 1, UserID: renterID,
		BeginDate: day("2024-01-10"), EndDate: day("2024-01-15"),
		Days: 6, HousePrice: 10000, Amount: 60000,
		Status: models.StatusWaitAccept,
	})
	return store, id
}

func TestCreateOrder(t *testing.T) {
	for _, lock := range []bool{true, false} {
		name := "Unlocked"
		if lock {
			name = "Locked"
		}
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("OverlappingRangeConflicts", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				_, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-01-14", EndDate: "2024-01-18"})
				assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Code(err))
			})

			t.Run("SharedBoundaryDayConflicts", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				_, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-01-15", EndDate: "2024-01-15"})
				assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Code(err))
			})

			t.Run("FreeRangeComputesAmount", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				id, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-01-16", EndDate: "2024-01-20"})
				require.NoError(t, err)

				order := store.order(id)
				assert.Equal(t, 5, order.Days)
				assert.Equal(t, int64(50000), order.Amount)
				assert.Equal(t, int64(10000), order.HousePrice)
				assert.Equal(t, models.StatusWaitAccept, order.Status)
				assert.Equal(t, otherID, order.UserID)
			})

			t.Run("SingleDayStay", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				id, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-02-01", EndDate: "2024-02-01"})
				require.NoError(t, err)
				assert.Equal(t, 1, store.order(id).Days)
				assert.Equal(t, int64(10000), store.order(id).Amount)
			})

			t.Run("OwnerCannotBookOwnHouse", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				_, err := svc.CreateOrder(ctx, landlordID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-03-01", EndDate: "2024-03-02"})
				assert.Equal(t, apperrors.ErrCodeRole, apperrors.Code(err))
			})

			t.Run("UnknownHouse", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				_, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 42, StartDate: "2024-03-01", EndDate: "2024-03-02"})
				assert.Equal(t, apperrors.ErrCodeNoData, apperrors.Code(err))
			})

			t.Run("InvalidDatesCheckedBeforeHouse", func(t *testing.T) {
				store, _ := bookedStore()
				svc := newTestOrderService(store, nil, lock)

				_, err := svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 42, StartDate: "2024-03-05", EndDate: "2024-03-01"})
				assert.Equal(t, apperrors.ErrCodeParam, apperrors.Code(err))

				_, err = svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024/03/05", EndDate: "2024-03-06"})
				assert.Equal(t, apperrors.ErrCodeParam, apperrors.Code(err))
			})
		})
	}
}

func TestCreateOrderRejectedOrderStillBlocks(t *testing.T) {
	store, id := bookedStore()
	svc := newTestOrderService(store, nil, true)
	ctx := context.Background()

	_, err := svc.ApplyAction(ctx, landlordID, id, models.OrderActionRequest{Action: models.ActionReject, Reason: "maintenance"})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, otherID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-01-12", EndDate: "2024-01-13"})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Code(err))
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	store, id := bookedStore()
	hc, mr := newRedisCache(t)
	svc := newTestOrderService(store, hc, true)

	require.NoError(t, mr.Set(cache.HouseInfoKey(1), `{"hid":1,"order_count":0}`))

	status, err := svc.ApplyAction(ctx, landlordID, id, models.OrderActionRequest{Action: models.ActionAccept})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaitComment, status)
	assert.True(t, mr.Exists(cache.HouseInfoKey(1)))

	status, err = svc.ApplyAction(ctx, renterID, id, models.OrderActionRequest{Action: models.ActionComment, Comment: "quiet and clean"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, status)

	order := store.order(id)
	assert.Equal(t, models.StatusComplete, order.Status)
	assert.Equal(t, "quiet and clean", order.Comment)
	assert.Equal(t, 1, store.house(1).OrderCount)
	assert.False(t, mr.Exists(cache.HouseInfoKey(1)))
}

func TestRejectStoresReason(t *testing.T) {
	store, id := bookedStore()
	svc := newTestOrderService(store, nil, true)

	status, err := svc.ApplyAction(context.Background(), landlordID, id, models.OrderActionRequest{Action: models.ActionReject, Reason: "dates blocked"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, status)
	assert.Equal(t, "dates blocked", store.order(id).Comment)
	assert.Equal(t, 0, store.house(1).OrderCount)
}

func TestTerminalOrdersRejectEveryAction(t *testing.T) {
	ctx := context.Background()
	for _, terminal := range []models.OrderStatus{models.StatusComplete, models.StatusRejected} {
		store, id := bookedStore()
		store.orders[id].Status = terminal
		svc := newTestOrderService(store, nil, true)

		cases := []struct {
			actor int64
			req   models.OrderActionRequest
		}{
			{landlordID, models.OrderActionRequest{Action: models.ActionAccept}},
			{landlordID, models.OrderActionRequest{Action: models.ActionReject, Reason: "no"}},
			{renterID, models.OrderActionRequest{Action: models.ActionComment, Comment: "late review"}},
		}
		for _, tc := range cases {
			_, err := svc.ApplyAction(ctx, tc.actor, id, tc.req)
			assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err), "%s on %s", tc.req.Action, terminal)
		}
		assert.Equal(t, terminal, store.order(id).Status)
		assert.Equal(t, 0, store.house(1).OrderCount)
	}
}

func TestApplyActionAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("RenterCannotAccept", func(t *testing.T) {
		store, id := bookedStore()
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, renterID, id, models.OrderActionRequest{Action: models.ActionAccept})
		assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err))
		assert.Equal(t, models.StatusWaitAccept, store.order(id).Status)
	})

	t.Run("StrangerCannotReject", func(t *testing.T) {
		store, id := bookedStore()
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, otherID, id, models.OrderActionRequest{Action: models.ActionReject, Reason: "spam"})
		assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err))
	})

	t.Run("LandlordCannotComment", func(t *testing.T) {
		store, id := bookedStore()
		store.orders[id].Status = models.StatusWaitComment
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, landlordID, id, models.OrderActionRequest{Action: models.ActionComment, Comment: "great guest"})
		assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err))
		assert.Equal(t, 0, store.house(1).OrderCount)
	})

	t.Run("UnknownOrder", func(t *testing.T) {
		store, _ := bookedStore()
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, landlordID, 999, models.OrderActionRequest{Action: models.ActionAccept})
		assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err))
	})
}

func TestApplyActionValidatesPayloadFirst(t *testing.T) {
	ctx := context.Background()
	store, id := bookedStore()
	store.orders[id].Status = models.StatusComplete
	svc := newTestOrderService(store, nil, true)

	cases := []models.OrderActionRequest{
		{Action: models.ActionComment},
		{Action: models.ActionComment, Comment: "  "},
		{Action: "cancel"},
	}
	for _, req := range cases {
		_, err := svc.ApplyAction(ctx, landlordID, id, req)
		assert.Equal(t, apperrors.ErrCodeParam, apperrors.Code(err), "action %q", req.Action)
	}
}

func TestRejectReasonCheckedAfterState(t *testing.T) {
	ctx := context.Background()

	for _, status := range []models.OrderStatus{models.StatusRejected, models.StatusComplete, models.StatusWaitComment} {
		t.Run(string(status), func(t *testing.T) {
			store, id := bookedStore()
			store.orders[id].Status = status
			svc := newTestOrderService(store, nil, true)

			for _, reason := range []string{"", "   "} {
				_, err := svc.ApplyAction(ctx, landlordID, id, models.OrderActionRequest{Action: models.ActionReject, Reason: reason})
				assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err), "reason %q", reason)
			}
			assert.Equal(t, status, store.order(id).Status)
		})
	}

	t.Run("NotOwner", func(t *testing.T) {
		store, id := bookedStore()
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, otherID, id, models.OrderActionRequest{Action: models.ActionReject})
		assert.Equal(t, apperrors.ErrCodeReq, apperrors.Code(err))
	})

	t.Run("MissingReason", func(t *testing.T) {
		store, id := bookedStore()
		svc := newTestOrderService(store, nil, true)

		_, err := svc.ApplyAction(ctx, landlordID, id, models.OrderActionRequest{Action: models.ActionReject, Reason: " "})
		assert.Equal(t, apperrors.ErrCodeParam, apperrors.Code(err))
		assert.Equal(t, models.StatusWaitAccept, store.order(id).Status)
	})
}

func TestCommentSucceedsWhenInvalidationFails(t *testing.T) {
	store, id := bookedStore()
	store.orders[id].Status = models.StatusWaitComment
	hc := new(MockHouseCache)
	hc.On("InvalidateHouse", mock.Anything, int64(1)).Return(errors.New("connection refused"))
	svc := newTestOrderService(store, hc, true)

	status, err := svc.ApplyAction(context.Background(), renterID, id, models.OrderActionRequest{Action: models.ActionComment, Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, status)
	assert.Equal(t, 1, store.house(1).OrderCount)
	hc.AssertExpectations(t)
}

func TestListUserOrders(t *testing.T) {
	ctx := context.Background()
	store, first := bookedStore()
	svc := newTestOrderService(store, nil, true)

	second, err := svc.CreateOrder(ctx, renterID, models.CreateOrderRequest{HouseID: 1, StartDate: "2024-02-01", EndDate: "2024-02-03"})
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, landlordID, first, models.OrderActionRequest{Action: models.ActionReject, Reason: "closed"})
	require.NoError(t, err)

	t.Run("Renter", func(t *testing.T) {
		views, err := svc.ListUserOrders(ctx, renterID, models.RoleRenter)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, second, views[0].OrderID)
		assert.Equal(t, "Loft", views[0].Title)
		assert.Equal(t, int64(30000), views[0].Amount)
		assert.Equal(t, "closed", views[1].RejectionReason)
		assert.Empty(t, views[1].Review)
	})

	t.Run("Landlord", func(t *testing.T) {
		views, err := svc.ListUserOrders(ctx, landlordID, models.RoleLandlord)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("NoOrders", func(t *testing.T) {
		views, err := svc.ListUserOrders(ctx, otherID, models.RoleRenter)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})
}

func TestOverlapsIsSymmetric(t *testing.T) {
	ranges := [][2]string{
		{"2024-01-10", "2024-01-15"},
		{"2024-01-14", "2024-01-18"},
		{"2024-01-16", "2024-01-20"},
		{"2024-01-15", "2024-01-15"},
		{"2024-01-01", "2024-01-31"},
		{"2024-02-01", "2024-02-01"},
	}
	for _, a := range ranges {
		for _, b := range ranges {
			b1, e1 := day(a[0]), day(a[1])
			b2, e2 := day(b[0]), day(b[1])
			assert.Equal(t, Overlaps(b1, e1, b2, e2), Overlaps(b2, e2, b1, e1), "%v %v", a, b)
		}
		assert.True(t, Overlaps(day(a[0]), day(a[1]), day(a[0]), day(a[1])))
	}

	assert.True(t, Overlaps(day("2024-01-10"), day("2024-01-15"), day("2024-01-15"), day("2024-01-20")))
	assert.False(t, Overlaps(day("2024-01-10"), day("2024-01-15"), day("2024-01-16"), day("2024-01-20")))
}
