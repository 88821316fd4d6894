package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlmapper/database"
	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

// Connection is an open database handle produced by a Provider.
type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

// Connector opens health-checked connections for one driver and config.
type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	ConnectWithRetry(ctx context.Context, cfg RetryConfig) (Connection, error)
}

// Executor returns the executor a mapper runs its statements through.
func Executor(conn Connection) *database.Executor {
	return database.NewExecutor(conn.Database(), conn.Dialect())
}
