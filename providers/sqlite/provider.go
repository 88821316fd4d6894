package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"

	_ "modernc.org/sqlite"

	"github.com/Konsultn-Engineering/sqlmapper/connector"
	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Memory is the Database value for a private in-memory database.
const Memory = ":memory:"

type Provider struct{}

func init() {
	connector.Register("sqlite", &Provider{})
	connector.Register("sqlite3", &Provider{})
}

// DSN returns the database path of cfg followed by its params, for example
// "app.db?_pragma=busy_timeout%285000%29".
func DSN(cfg connector.Config) (string, error) {
	if cfg.Database == "" {
		return "", errors.New("database path is required")
	}
	if len(cfg.Params) == 0 {
		return cfg.Database, nil
	}
	q := url.Values{}
	for k, v := range cfg.Params {
		q.Add(k, v)
	}
	return cfg.Database + "?" + q.Encode(), nil
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	pool := cfg.Pool.WithPoolDefaults()
	if cfg.Database == Memory {
		// Each connection to :memory: opens a separate database.
		pool.MaxOpen = 1
	}
	return connector.NewSQLConnection(db, dialect.NewSQLiteDialect(), pool), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}

func (p *Provider) HealthCheck(ctx context.Context, conn connector.Connection) error {
	return conn.Health(ctx)
}
