package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ihome-rentals/pkg/config"
	"ihome-rentals/pkg/logger"
	"ihome-rentals/pkg/metrics"

	"github.com/go-sql-driver/mysql"
)

var DB *sql.DB

// build the MySQL DSN for the configured database.
func DSN(cfg *config.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.Database.User
	mc.Passwd = cfg.Database.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	mc.DBName = cfg.Database.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// initialize the MySQL connection pool.
func InitDB(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		logger.GlobalLogger.Errorf("failed to open MySQL: %v", err)
		return fmt.Errorf("failed to open MySQL: %v", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	start := time.Now()
	err = db.PingContext(ctx)
	metrics.MySQLOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MySQLErrorsTotal.WithLabelValues("ping", "").Inc()
		db.Close()
		logger.GlobalLogger.Errorf("failed to ping MySQL: %v", err)
		return fmt.Errorf("failed to ping MySQL: %v", err)
	}

	DB = db
	logger.GlobalLogger.Println("MySQL connected successfully.")
	return nil
}

// close the MySQL connection pool.
func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			logger.GlobalLogger.Errorf("Error closing MySQL: %v", err)
		} else {
			logger.GlobalLogger.Println("MySQL connection closed")
		}
	}
}
