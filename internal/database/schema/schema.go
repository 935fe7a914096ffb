// Package schema creates the catalog tables when they are missing.
// It never alters existing tables; there is no versioned migration history.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type step struct {
	Name string
	SQL  string
}

var steps = []step{
	{
		Name: "create_table_category",
		SQL: `CREATE TABLE IF NOT EXISTS category (
  id   BIGSERIAL    PRIMARY KEY,
  name VARCHAR(100) NOT NULL
);`,
	},
	{
		Name: "create_table_streaming",
		SQL: `CREATE TABLE IF NOT EXISTS streaming (
  id   BIGSERIAL    PRIMARY KEY,
  name VARCHAR(100) NOT NULL
);`,
	},
}

const sentinelQuery = `SELECT to_regclass('public.category') IS NOT NULL AND to_regclass('public.streaming') IS NOT NULL`

// Ensure creates the category and streaming tables unless both already exist.
func Ensure(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_schema_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("check catalog tables: %w", err)
	}

	if exists {
		log.Info("db_schema_skip",
			zap.String("status", "success"),
			zap.String("reason", "catalog tables already exist"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.Error("db_schema_failed",
				zap.String("status", "error"),
				zap.String("schema_step", s.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("schema step %s failed: %w", s.Name, err)
		}

		log.Info("db_schema_step",
			zap.String("status", "success"),
			zap.String("schema_step", s.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_schema_ready",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
