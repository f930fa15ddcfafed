package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/pkg/database"
)

const orderTable = "ih_order_info"

const orderColumns = `o.id, o.house_id, o.user_id, o.begin_date, o.end_date, o.days, o.house_price, o.amount,
	o.status, o.comment, o.create_time`

type orderRepository struct {
	db *sql.DB
	// rejectedFreesCalendar excludes REJECTED orders from conflict detection.
	rejectedFreesCalendar bool
}

func NewOrderRepository(db *sql.DB, rejectedFreesCalendar bool) OrderRepository {
	return &orderRepository{db: db, rejectedFreesCalendar: rejectedFreesCalendar}
}

func (r *orderRepository) statusFilter() string {
	if r.rejectedFreesCalendar {
		return " AND status <> 'REJECTED'"
	}
	return ""
}

func scanOrder(s rowScanner, extra ...interface{}) (models.Order, error) {
	var o models.Order
	var status string
	var comment sql.NullString
	dest := []interface{}{&o.ID, &o.HouseID, &o.UserID, &o.BeginDate, &o.EndDate, &o.Days, &o.HousePrice, &o.Amount,
		&status, &comment, &o.CreateTime}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return o, err
	}
	o.Status = models.OrderStatus(status)
	o.Comment = comment.String
	return o, nil
}

func (r *orderRepository) countConflicts(ctx context.Context, q database.Querier, houseID int64, begin, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM ih_order_info WHERE house_id = ? AND begin_date <= ? AND end_date >= ?` + r.statusFilter()
	var count int
	if err := q.QueryRowContext(ctx, query, houseID, end, begin).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conflicting orders of house %d: %w", houseID, err)
	}
	return count, nil
}

func (r *orderRepository) CountConflicts(ctx context.Context, houseID int64, begin, end time.Time) (int, error) {
	start := time.Now()
	count, err := r.countConflicts(ctx, r.db, houseID, begin, end)
	database.Observe("count_conflicts", orderTable, start, err)
	return count, err
}

func (r *orderRepository) ConflictingHouseIDs(ctx context.Context, startDate, endDate *time.Time) ([]int64, error) {
	var cond string
	var args []interface{}
	switch {
	case startDate != nil && endDate != nil:
		cond = "begin_date <= ? AND end_date >= ?"
		args = append(args, *endDate, *startDate)
	case startDate != nil:
		cond = "end_date >= ?"
		args = append(args, *startDate)
	case endDate != nil:
		cond = "begin_date <= ?"
		args = append(args, *endDate)
	default:
		return nil, nil
	}

	start := time.Now()
	var err error
	defer func() { database.Observe("conflicting_houses", orderTable, start, err) }()

	query := `SELECT DISTINCT house_id FROM ih_order_info WHERE ` + cond + r.statusFilter() + ` ORDER BY house_id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflicting houses: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan conflicting house: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conflicting houses: %w", err)
	}
	return ids, nil
}

func insertOrder(ctx context.Context, q database.Querier, order *models.Order) error {
	res, err := q.ExecContext(ctx, `INSERT INTO ih_order_info
		(user_id, house_id, begin_date, end_date, days, house_price, amount, status, create_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.HouseID, order.BeginDate, order.EndDate, order.Days, order.HousePrice, order.Amount,
		string(order.Status), order.CreateTime)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read order id: %w", err)
	}
	order.ID = id
	return nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	start := time.Now()
	err := insertOrder(ctx, r.db, order)
	database.Observe("create", orderTable, start, err)
	return err
}

func (r *orderRepository) CreateIfAvailable(ctx context.Context, order *models.Order) error {
	start := time.Now()
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM ih_house_info WHERE id = ? FOR UPDATE`, order.HouseID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("house %d: %w", order.HouseID, apperrors.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock house %d: %w", order.HouseID, err)
		}

		count, err := r.countConflicts(ctx, tx, order.HouseID, order.BeginDate, order.EndDate)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("house %d: %w", order.HouseID, apperrors.ErrDateConflict)
		}
		return insertOrder(ctx, tx, order)
	})
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDateConflict) {
		database.Observe("create_locked", orderTable, start, nil)
	} else {
		database.Observe("create_locked", orderTable, start, err)
	}
	return err
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	start := time.Now()
	query := `SELECT ` + orderColumns + ` FROM ih_order_info o WHERE o.id = ?`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		database.Observe("find_by_id", orderTable, start, nil)
		return nil, fmt.Errorf("order %d: %w", id, apperrors.ErrNotFound)
	}
	database.Observe("find_by_id", orderTable, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query order %d: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepository) listOrders(ctx context.Context, operation, where string, arg int64) ([]models.OrderRow, error) {
	start := time.Now()
	var err error
	defer func() { database.Observe(operation, orderTable, start, err) }()

	query := `SELECT ` + orderColumns + `, h.title, h.index_image_url
		FROM ih_order_info o
		JOIN ih_house_info h ON h.id = o.house_id
		WHERE ` + where + `
		ORDER BY o.create_time DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.OrderRow
	for rows.Next() {
		var row models.OrderRow
		row.Order, err = scanOrder(rows, &row.HouseTitle, &row.HouseImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) ListByRenter(ctx context.Context, renterID int64) ([]models.OrderRow, error) {
	return r.listOrders(ctx, "list_by_renter", "o.user_id = ?", renterID)
}

func (r *orderRepository) ListByLandlord(ctx context.Context, ownerID int64) ([]models.OrderRow, error) {
	return r.listOrders(ctx, "list_by_landlord", "h.user_id = ?", ownerID)
}

func updateStatus(ctx context.Context, q database.Querier, id int64, from, to models.OrderStatus, comment string) error {
	var res sql.Result
	var err error
	if comment == "" {
		res, err = q.ExecContext(ctx, `UPDATE ih_order_info SET status = ? WHERE id = ? AND status = ?`,
			string(to), id, string(from))
	} else {
		res, err = q.ExecContext(ctx, `UPDATE ih_order_info SET status = ?, comment = ? WHERE id = ? AND status = ?`,
			string(to), comment, id, string(from))
	}
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("order %d no longer %s: %w", id, from, apperrors.ErrStaleState)
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus, comment string) error {
	start := time.Now()
	err := updateStatus(ctx, r.db, id, from, to, comment)
	database.Observe("update_status", orderTable, start, err)
	return err
}

func (r *orderRepository) Complete(ctx context.Context, id, houseID int64, comment string) error {
	start := time.Now()
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := updateStatus(ctx, tx, id, models.StatusWaitComment, models.StatusComplete, comment); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `UPDATE ih_house_info SET order_count = order_count + 1 WHERE id = ?`, houseID)
		if err != nil {
			return fmt.Errorf("failed to bump order count of house %d: %w", houseID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to bump order count of house %d: %w", houseID, err)
		}
		if n == 0 {
			return fmt.Errorf("house %d: %w", houseID, apperrors.ErrNotFound)
		}
		return nil
	})
	database.Observe("complete", orderTable, start, err)
	return err
}
