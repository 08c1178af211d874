package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	pgdb "github.com/sprintsync/sprintsync-api/internal/storage/pg/sqlc"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type Database struct {
	DB      *sql.DB
	Queries *pgdb.Queries
}

// InitDatabase initializes the database connection and runs migrations.
func InitDatabase(ctx context.Context, databaseURL string, pool PoolConfig) (*Database, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{
		DB:      db,
		Queries: pgdb.New(db),
	}, nil
}

// HealthStatus is the database section of the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// HealthCheck pings the database.
func (d *Database) HealthCheck(ctx context.Context) HealthStatus {
	start := time.Now()
	if err := d.DB.PingContext(ctx); err != nil {
		return HealthStatus{
			Status:    "unhealthy",
			LatencyMs: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		}
	}

	return HealthStatus{
		Status:    "healthy",
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (d *Database) Close() error {
	return d.DB.Close()
}
