package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"restopos-api/internal/config"
)

var sqlOpen = sql.Open

type driverSpec struct {
	sqlDriver string // name registered by the driver package
	bindName  string // name sqlx uses to pick the placeholder style
	system    attribute.KeyValue
	dsn       func(config.DatabaseConfig) (string, error)
}

var drivers = map[string]driverSpec{
	"mysql": {
		sqlDriver: "mysql",
		bindName:  "mysql",
		system:    semconv.DBSystemMySQL,
		dsn:       BuildMySQLDSN,
	},
	"postgres": {
		sqlDriver: "pgx",
		bindName:  "pgx",
		system:    semconv.DBSystemPostgreSQL,
		dsn:       BuildPostgresDSN,
	},
}

// Open connects to the configured database through an otelsql-wrapped driver
// and returns a sqlx handle whose Rebind matches the driver's placeholders.
func Open(c config.DatabaseConfig) (*sqlx.DB, error) {
	spec, ok := drivers[c.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	dsn, err := spec.dsn(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register(spec.sqlDriver,
		otelsql.WithAttributes(spec.system),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return sqlx.NewDb(db, spec.bindName), nil
}
