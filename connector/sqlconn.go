package connector

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlmapper/database"
	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

// SQLConnection is a Connection over a database/sql pool.
type SQLConnection struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// NewSQLConnection wraps db, applying pool settings.
func NewSQLConnection(db *sql.DB, d dialect.Dialect, pool PoolConfig) *SQLConnection {
	if pool.MaxOpen > 0 {
		db.SetMaxOpenConns(pool.MaxOpen)
	}
	if pool.MaxIdle > 0 {
		db.SetMaxIdleConns(pool.MaxIdle)
	}
	if pool.MaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}
	if pool.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(pool.MaxIdleTime)
	}
	return &SQLConnection{db: db, dialect: d}
}

func (c *SQLConnection) DB() *sql.DB { return c.db }

func (c *SQLConnection) Database() database.Database { return database.NewSqlDatabase(c.db) }

func (c *SQLConnection) Dialect() dialect.Dialect { return c.dialect }

func (c *SQLConnection) Health(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *SQLConnection) Stats() ConnectionStats { return StatsFromDB(c.db.Stats()) }

func (c *SQLConnection) Close() error { return c.db.Close() }
