package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ihome-rentals/pkg/logger"
)

// Schema holds the table definitions, in dependency order.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS ih_user_profile (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(32) NOT NULL UNIQUE,
		mobile VARCHAR(11) NOT NULL UNIQUE,
		avatar_url VARCHAR(128) NOT NULL DEFAULT '',
		create_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS ih_area_info (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ih_facility_info (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ih_house_info (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		area_id BIGINT NOT NULL,
		title VARCHAR(64) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		address VARCHAR(512) NOT NULL DEFAULT '',
		room_count INT NOT NULL DEFAULT 1,
		acreage INT NOT NULL DEFAULT 0,
		unit VARCHAR(32) NOT NULL DEFAULT '',
		capacity INT NOT NULL DEFAULT 1,
		beds VARCHAR(64) NOT NULL DEFAULT '',
		deposit BIGINT NOT NULL DEFAULT 0,
		min_days INT NOT NULL DEFAULT 1,
		max_days INT NOT NULL DEFAULT 0,
		order_count INT NOT NULL DEFAULT 0,
		index_image_url VARCHAR(256) NOT NULL DEFAULT '',
		create_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_house_area (area_id),
		INDEX idx_house_owner (user_id),
		INDEX idx_house_order_count (order_count),
		FOREIGN KEY (user_id) REFERENCES ih_user_profile(id),
		FOREIGN KEY (area_id) REFERENCES ih_area_info(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ih_house_facility (
		house_id BIGINT NOT NULL,
		facility_id BIGINT NOT NULL,
		PRIMARY KEY (house_id, facility_id),
		FOREIGN KEY (house_id) REFERENCES ih_house_info(id),
		FOREIGN KEY (facility_id) REFERENCES ih_facility_info(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ih_house_image (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		house_id BIGINT NOT NULL,
		url VARCHAR(256) NOT NULL,
		INDEX idx_image_house (house_id),
		FOREIGN KEY (house_id) REFERENCES ih_house_info(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ih_order_info (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		house_id BIGINT NOT NULL,
		begin_date DATE NOT NULL,
		end_date DATE NOT NULL,
		days INT NOT NULL,
		house_price BIGINT NOT NULL,
		amount BIGINT NOT NULL,
		status ENUM('WAIT_ACCEPT','WAIT_COMMENT','COMPLETE','REJECTED') NOT NULL DEFAULT 'WAIT_ACCEPT',
		comment TEXT,
		create_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_order_house_dates (house_id, begin_date, end_date),
		INDEX idx_order_dates (begin_date, end_date),
		INDEX idx_order_user (user_id),
		INDEX idx_order_status (status),
		FOREIGN KEY (user_id) REFERENCES ih_user_profile(id),
		FOREIGN KEY (house_id) REFERENCES ih_house_info(id)
	)`,
}

// create the tables and indexes used by the application if they do not exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, stmt := range Schema {
		start := time.Now()
		_, err := db.ExecContext(ctx, stmt)
		Observe("create_schema", "", start, err)
		if err != nil {
			logger.GlobalLogger.Errorf("failed to apply schema statement: %v", err)
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	logger.GlobalLogger.Println("Database schema ensured")
	return nil
}
