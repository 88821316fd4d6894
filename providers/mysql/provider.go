package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/Konsultn-Engineering/sqlmapper/connector"
	"github.com/Konsultn-Engineering/sqlmapper/dialect"
)

type Provider struct {
	dialect dialect.Dialect
}

func init() {
	connector.Register("mysql", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("mariadb", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("tidb", &Provider{dialect: dialect.NewTiDBDialect()})
}

// DriverConfig maps cfg onto the driver's configuration.
func DriverConfig(cfg connector.Config) (*mysql.Config, error) {
	if err := cfg.ValidateNetwork(); err != nil {
		return nil, err
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.QueryTimeout

	tls, err := tlsConfig(cfg.SSLMode)
	if err != nil {
		return nil, err
	}
	mc.TLSConfig = tls

	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}
	return mc, nil
}

// DSN returns the driver DSN for cfg.
func DSN(cfg connector.Config) (string, error) {
	mc, err := DriverConfig(cfg)
	if err != nil {
		return "", err
	}
	return mc.FormatDSN(), nil
}

// tlsConfig maps the Postgres-style ssl modes onto the driver's tls names.
func tlsConfig(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "", "disable", "false":
		return "", nil
	case "require", "verify-full", "true":
		return "true", nil
	case "prefer", "preferred":
		return "preferred", nil
	case "skip-verify", "verify-ca":
		return "skip-verify", nil
	}
	return "", fmt.Errorf("unsupported ssl_mode %q", mode)
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	mc, err := DriverConfig(cfg)
	if err != nil {
		return nil, err
	}

	c, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(c)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return connector.NewSQLConnection(db, p.dialect, cfg.Pool.WithPoolDefaults()), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return p.dialect
}

func (p *Provider) HealthCheck(ctx context.Context, conn connector.Connection) error {
	return conn.Health(ctx)
}
