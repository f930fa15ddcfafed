package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/internal/transformers"
	"ihome-rentals/internal/validators"
	"ihome-rentals/pkg/logger"
	"ihome-rentals/pkg/metrics"
)

// OrderService runs the booking lifecycle: WAIT_ACCEPT, then WAIT_COMMENT and
// COMPLETE, or REJECTED. COMPLETE and REJECTED are terminal.
type OrderService struct {
	orders       repositories.OrderRepository
	houses       repositories.HouseRepository
	availability *AvailabilityChecker
	cache        repositories.HouseCache
	validator    validators.OrderValidator
	trans        transformers.OrderTransformer
	// lockHouseRow serializes bookings of one house through a row lock.
	lockHouseRow bool
}

func NewOrderService(
	orders repositories.OrderRepository,
	houses repositories.HouseRepository,
	availability *AvailabilityChecker,
	cache repositories.HouseCache,
	validator validators.OrderValidator,
	trans transformers.OrderTransformer,
	lockHouseRow bool,
) *OrderService {
	return &OrderService{
		orders:       orders,
		houses:       houses,
		availability: availability,
		cache:        cache,
		validator:    validator,
		trans:        trans,
		lockHouseRow: lockHouseRow,
	}
}

// CreateOrder books the house for actorID and returns the new order id.
func (s *OrderService) CreateOrder(ctx context.Context, actorID int64, req models.CreateOrderRequest) (int64, error) {
	window, err := s.validator.ValidateCreate(req)
	if err != nil {
		return 0, err
	}

	house, err := s.houses.FindByID(ctx, req.HouseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, apperrors.NewNoDataError(fmt.Sprintf("house %d not found", req.HouseID), err)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("house lookup failed: house_id=%d err=%v", req.HouseID, err)
		return 0, apperrors.NewDBError("failed to query house", err)
	}
	if house.UserID == actorID {
		return 0, apperrors.NewRoleError(fmt.Sprintf("user %d tried to book own house %d", actorID, house.ID))
	}

	order := &models.Order{
		HouseID:    house.ID,
		UserID:     actorID,
		BeginDate:  window.Begin,
		EndDate:    window.End,
		Days:       window.Days,
		HousePrice: house.Price,
		Amount:     int64(window.Days) * house.Price,
		Status:     models.StatusWaitAccept,
		CreateTime: time.Now().UTC(),
	}

	if s.lockHouseRow {
		err = s.orders.CreateIfAvailable(ctx, order)
	} else {
		err = s.createUnlocked(ctx, order)
	}
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrDateConflict):
		metrics.BookingConflictsTotal.Inc()
		return 0, apperrors.NewConflictError(fmt.Sprintf("house %d already booked between %s and %s",
			house.ID, req.StartDate, req.EndDate))
	case errors.Is(err, apperrors.ErrNotFound):
		return 0, apperrors.NewNoDataError(fmt.Sprintf("house %d not found", req.HouseID), err)
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		logger.GlobalLogger.Errorf("order insert failed: house_id=%d user_id=%d err=%v", house.ID, actorID, err)
		return 0, apperrors.NewDBError("failed to save order", err)
	}

	metrics.BookingsCreatedTotal.Inc()
	logger.GlobalLogger.Printf("order %d created: house_id=%d user_id=%d %s..%s",
		order.ID, house.ID, actorID, req.StartDate, req.EndDate)
	return order.ID, nil
}

// createUnlocked checks availability and inserts in two separate statements.
// Two concurrent requests for the same dates can both pass the check.
func (s *OrderService) createUnlocked(ctx context.Context, order *models.Order) error {
	conflict, err := s.availability.ConflictExists(ctx, order.HouseID, order.BeginDate, order.EndDate)
	if err != nil {
		logger.GlobalLogger.Errorf("conflict check failed: house_id=%d err=%v", order.HouseID, err)
		return apperrors.NewDBError("failed to check availability", err)
	}
	if conflict {
		return apperrors.ErrDateConflict
	}
	return s.orders.Create(ctx, order)
}

// ListUserOrders lists the orders on the landlord's houses or the renter's own orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, actorID int64, role models.Role) ([]models.OrderView, error) {
	var rows []models.OrderRow
	var err error
	if role == models.RoleLandlord {
		rows, err = s.orders.ListByLandlord(ctx, actorID)
	} else {
		rows, err = s.orders.ListByRenter(ctx, actorID)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("order list failed: user_id=%d role=%s err=%v", actorID, role, err)
		return nil, apperrors.NewDBError("failed to query orders", err)
	}
	return s.trans.Views(rows), nil
}

// ApplyAction moves an order through the state machine on behalf of actorID
// and returns the new status. The action and review text are validated before
// the order is read; a reject reason only once the order is known to be rejectable.
func (s *OrderService) ApplyAction(ctx context.Context, actorID, orderID int64, req models.OrderActionRequest) (models.OrderStatus, error) {
	if err := s.validator.ValidateAction(req); err != nil {
		return "", err
	}
	from, to, _ := req.Action.Transition()

	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", apperrors.NewReqError(fmt.Sprintf("order %d not found", orderID), err)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("order lookup failed: order_id=%d err=%v", orderID, err)
		return "", apperrors.NewDBError("failed to query order", err)
	}
	if order.Status != from {
		return "", apperrors.NewReqError(fmt.Sprintf("order %d is %s, %s requires %s", orderID, order.Status, req.Action, from), nil)
	}
	if err := s.authorize(ctx, actorID, order, req.Action); err != nil {
		return "", err
	}
	if req.Action == models.ActionReject {
		if err := s.validator.ValidateRejectReason(req.Reason); err != nil {
			return "", err
		}
	}

	switch req.Action {
	case models.ActionAccept:
		err = s.orders.UpdateStatus(ctx, order.ID, from, to, "")
	case models.ActionReject:
		err = s.orders.UpdateStatus(ctx, order.ID, from, to, req.Reason)
	case models.ActionComment:
		err = s.orders.Complete(ctx, order.ID, order.HouseID, req.Comment)
	}
	if errors.Is(err, apperrors.ErrStaleState) {
		return "", apperrors.NewReqError(fmt.Sprintf("order %d changed status concurrently", orderID), err)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("order transition failed: order_id=%d action=%s err=%v", orderID, req.Action, err)
		return "", apperrors.NewDBError("failed to update order", err)
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(req.Action), string(to)).Inc()

	if req.Action == models.ActionComment {
		s.invalidateHouse(ctx, order.HouseID)
	}
	return to, nil
}

// authorize checks that the landlord acts on accept and reject and the renter on comment.
func (s *OrderService) authorize(ctx context.Context, actorID int64, order *models.Order, action models.OrderAction) error {
	if !action.ByLandlord() {
		if order.UserID != actorID {
			return apperrors.NewReqError(fmt.Sprintf("user %d is not the renter of order %d", actorID, order.ID), nil)
		}
		return nil
	}

	house, err := s.houses.FindByID(ctx, order.HouseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewReqError(fmt.Sprintf("house %d of order %d not found", order.HouseID, order.ID), err)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("house lookup failed: house_id=%d err=%v", order.HouseID, err)
		return apperrors.NewDBError("failed to query house", err)
	}
	if house.UserID != actorID {
		return apperrors.NewReqError(fmt.Sprintf("user %d does not own house %d", actorID, house.ID), nil)
	}
	return nil
}

// invalidateHouse drops the cached detail of a house whose order_count changed.
// Failure only leaves a stale entry until its TTL expires.
func (s *OrderService) invalidateHouse(ctx context.Context, houseID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHouse(ctx, houseID); err != nil {
		logger.GlobalLogger.Warnf("house detail invalidation failed: house_id=%d err=%v", houseID, err)
	}
}
