package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ihome-rentals/internal/models"
	"ihome-rentals/pkg/database"
)

type areaRepository struct {
	db *sql.DB
}

func NewAreaRepository(db *sql.DB) AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) FindAll(ctx context.Context) ([]models.Area, error) {
	start := time.Now()
	var err error
	defer func() { database.Observe("find_all", "ih_area_info", start, err) }()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM ih_area_info ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var a models.Area
		if err = rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read areas: %w", err)
	}
	return areas, nil
}
