package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/pkg/database"
)

const houseTable = "ih_house_info"

const houseColumns = `h.id, h.user_id, h.area_id, h.title, h.address, h.price, h.room_count, h.acreage,
	h.unit, h.capacity, h.beds, h.deposit, h.min_days, h.max_days, h.order_count, h.index_image_url, h.create_time`

const houseRowSelect = `SELECT ` + houseColumns + `, COALESCE(a.name, ''), COALESCE(u.avatar_url, '')
	FROM ih_house_info h
	LEFT JOIN ih_area_info a ON a.id = h.area_id
	LEFT JOIN ih_user_profile u ON u.id = h.user_id`

type houseRepository struct {
	db *sql.DB
}

func NewHouseRepository(db *sql.DB) HouseRepository {
	return &houseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHouse(s rowScanner, extra ...interface{}) (models.House, error) {
	var h models.House
	dest := []interface{}{&h.ID, &h.UserID, &h.AreaID, &h.Title, &h.Address, &h.Price, &h.RoomCount, &h.Acreage,
		&h.Unit, &h.Capacity, &h.Beds, &h.Deposit, &h.MinDays, &h.MaxDays, &h.OrderCount, &h.IndexImageURL, &h.CreateTime}
	err := s.Scan(append(dest, extra...)...)
	return h, err
}

func scanHouseRows(rows *sql.Rows) ([]models.HouseRow, error) {
	var result []models.HouseRow
	for rows.Next() {
		var row models.HouseRow
		h, err := scanHouse(rows, &row.AreaName, &row.OwnerAvatar)
		if err != nil {
			return nil, err
		}
		row.House = h
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *houseRepository) FindByID(ctx context.Context, id int64) (*models.House, error) {
	start := time.Now()
	query := `SELECT ` + houseColumns + ` FROM ih_house_info h WHERE h.id = ?`
	h, err := scanHouse(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		database.Observe("find_by_id", houseTable, start, nil)
		return nil, fmt.Errorf("house %d: %w", id, apperrors.ErrNotFound)
	}
	database.Observe("find_by_id", houseTable, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query house %d: %w", id, err)
	}
	return &h, nil
}

func (r *houseRepository) FindDetail(ctx context.Context, id int64, commentLimit int) (*models.HouseDetailRecord, error) {
	start := time.Now()
	var err error
	defer func() { database.Observe("find_detail", houseTable, start, err) }()

	rec := &models.HouseDetailRecord{}
	query := `SELECT ` + houseColumns + `, COALESCE(u.id, 0), COALESCE(u.name, ''), COALESCE(u.mobile, ''), COALESCE(u.avatar_url, '')
		FROM ih_house_info h
		LEFT JOIN ih_user_profile u ON u.id = h.user_id
		WHERE h.id = ?`
	rec.House, err = scanHouse(r.db.QueryRowContext(ctx, query, id),
		&rec.Owner.ID, &rec.Owner.Name, &rec.Owner.Mobile, &rec.Owner.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, fmt.Errorf("house %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query house %d: %w", id, err)
	}

	if rec.ImageURLs, err = r.imageURLs(ctx, id); err != nil {
		return nil, err
	}
	if rec.Facilities, err = r.facilityIDs(ctx, id); err != nil {
		return nil, err
	}
	if rec.Comments, err = r.comments(ctx, id, commentLimit); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *houseRepository) imageURLs(ctx context.Context, houseID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT url FROM ih_house_image WHERE house_id = ? ORDER BY id`, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query images of house %d: %w", houseID, err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan image of house %d: %w", houseID, err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *houseRepository) facilityIDs(ctx context.Context, houseID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT facility_id FROM ih_house_facility WHERE house_id = ? ORDER BY facility_id`, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query facilities of house %d: %w", houseID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan facility of house %d: %w", houseID, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *houseRepository) comments(ctx context.Context, houseID int64, limit int) ([]models.CommentRow, error) {
	comments := []models.CommentRow{}
	if limit <= 0 {
		return comments, nil
	}
	query := `SELECT u.name, u.mobile, o.comment, o.create_time
		FROM ih_order_info o
		JOIN ih_user_profile u ON u.id = o.user_id
		WHERE o.house_id = ? AND o.status = ? AND o.comment IS NOT NULL
		ORDER BY o.create_time DESC, o.id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, houseID, string(models.StatusComplete), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments of house %d: %w", houseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CommentRow
		var mobile string
		if err := rows.Scan(&c.UserName, &mobile, &c.Content, &c.CreateTime); err != nil {
			return nil, fmt.Errorf("failed to scan comment of house %d: %w", houseID, err)
		}
		// users who never picked a display name are shown anonymously
		if c.UserName == "" || c.UserName == mobile {
			c.UserName = "anonymous"
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func orderByClause(sortKey string) string {
	switch sortKey {
	case models.SortBooking:
		return "h.order_count DESC, h.id DESC"
	case models.SortPriceInc:
		return "h.price ASC, h.id ASC"
	case models.SortPriceDes:
		return "h.price DESC, h.id DESC"
	default:
		return "h.create_time DESC, h.id DESC"
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func (r *houseRepository) Search(ctx context.Context, filter HouseFilter) ([]models.HouseRow, int, error) {
	start := time.Now()
	var err error
	defer func() { database.Observe("search", houseTable, start, err) }()

	where := " WHERE 1 = 1"
	var args []interface{}
	if filter.AreaID != nil {
		where += " AND h.area_id = ?"
		args = append(args, *filter.AreaID)
	}
	if len(filter.ExcludeIDs) > 0 {
		where += " AND h.id NOT IN (" + placeholders(len(filter.ExcludeIDs)) + ")"
		for _, id := range filter.ExcludeIDs {
			args = append(args, id)
		}
	}

	var total int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ih_house_info h"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count houses: %w", err)
	}

	query := houseRowSelect + where + " ORDER BY " + orderByClause(filter.SortKey) + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search houses: %w", err)
	}
	defer rows.Close()

	houses, err := scanHouseRows(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan houses: %w", err)
	}
	return houses, total, nil
}

func (r *houseRepository) TopByOrderCount(ctx context.Context, limit int) ([]models.HouseRow, error) {
	start := time.Now()
	query := houseRowSelect + ` WHERE h.index_image_url <> '' ORDER BY h.order_count DESC, h.id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		database.Observe("top_by_order_count", houseTable, start, err)
		return nil, fmt.Errorf("failed to query top houses: %w", err)
	}
	defer rows.Close()

	houses, err := scanHouseRows(rows)
	database.Observe("top_by_order_count", houseTable, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to scan top houses: %w", err)
	}
	return houses, nil
}

func (r *houseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.HouseRow, error) {
	start := time.Now()
	query := houseRowSelect + ` WHERE h.user_id = ? ORDER BY h.create_time DESC, h.id DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		database.Observe("list_by_owner", houseTable, start, err)
		return nil, fmt.Errorf("failed to query houses of user %d: %w", ownerID, err)
	}
	defer rows.Close()

	houses, err := scanHouseRows(rows)
	database.Observe("list_by_owner", houseTable, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to scan houses of user %d: %w", ownerID, err)
	}
	return houses, nil
}

// Create inserts the house and links the facilities that exist. Unknown facility ids are dropped.
func (r *houseRepository) Create(ctx context.Context, house *models.House, facilityIDs []int64) error {
	start := time.Now()
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO ih_house_info
			(user_id, area_id, title, address, price, room_count, acreage, unit, capacity, beds, deposit, min_days, max_days, index_image_url, create_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			house.UserID, house.AreaID, house.Title, house.Address, house.Price, house.RoomCount, house.Acreage,
			house.Unit, house.Capacity, house.Beds, house.Deposit, house.MinDays, house.MaxDays, house.IndexImageURL, house.CreateTime)
		if err != nil {
			return fmt.Errorf("failed to insert house: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read house id: %w", err)
		}
		house.ID = id

		if len(facilityIDs) == 0 {
			return nil
		}
		known, err := knownFacilities(ctx, tx, facilityIDs)
		if err != nil {
			return err
		}
		for _, fid := range known {
			if _, err := tx.ExecContext(ctx, `INSERT INTO ih_house_facility (house_id, facility_id) VALUES (?, ?)`, id, fid); err != nil {
				return fmt.Errorf("failed to link facility %d: %w", fid, err)
			}
		}
		return nil
	})
	database.Observe("create", houseTable, start, err)
	return err
}

func knownFacilities(ctx context.Context, q database.Querier, ids []int64) ([]int64, error) {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := q.QueryContext(ctx, `SELECT id FROM ih_facility_info WHERE id IN (`+placeholders(len(ids))+`) ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facilities: %w", err)
	}
	defer rows.Close()

	var known []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan facility: %w", err)
		}
		known = append(known, id)
	}
	return known, rows.Err()
}
