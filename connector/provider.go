package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

// Provider opens connections for one database driver.
type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
	// HealthCheck verifies a freshly opened connection before it is handed out.
	HealthCheck(ctx context.Context, conn Connection) error
}
