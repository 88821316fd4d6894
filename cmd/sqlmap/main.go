package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/sqlmapper"
	"github.com/Konsultn-Engineering/sqlmapper/config"
	"github.com/Konsultn-Engineering/sqlmapper/connector"
	"github.com/Konsultn-Engineering/sqlmapper/logger"
	_ "github.com/Konsultn-Engineering/sqlmapper/providers/mysql"
	_ "github.com/Konsultn-Engineering/sqlmapper/providers/postgres"
	_ "github.com/Konsultn-Engineering/sqlmapper/providers/sqlite"
	"github.com/Konsultn-Engineering/sqlmapper/registry"
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

type cmdGlobal struct {
	flagConfig   string
	flagDriver   string
	flagDatabase string
	flagDebug    bool
	flagHelp     bool
}

func main() {
	// Run the main command and handle errors.
	err := newApp().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newApp() *cobra.Command {
	app := &cobra.Command{}
	app.Use = "sqlmap"
	app.Short = "Run SQL statements and print their rows"
	app.Long = `Description:
  Run SQL statements and print their rows

  Statements are given inline or by the name they are registered under in
  the configuration file. Rows are printed as generated records or maps.
`
	app.SilenceUsage = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	// Global flags.
	globalCmd := cmdGlobal{}
	app.PersistentFlags().StringVarP(&globalCmd.flagConfig, "config", "c", "", "Path to the configuration file"+"``")
	app.PersistentFlags().StringVar(&globalCmd.flagDriver, "driver", "", "Database driver, overrides the configuration"+"``")
	app.PersistentFlags().StringVarP(&globalCmd.flagDatabase, "database", "d", "", "Database name or path, overrides the configuration"+"``")
	app.PersistentFlags().BoolVar(&globalCmd.flagDebug, "debug", false, "Show all debug messages")
	app.PersistentFlags().BoolVarP(&globalCmd.flagHelp, "help", "h", false, "Print help")

	// Help handling.
	app.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	// fetch sub-command.
	fetchCmd := cmdFetch{global: &globalCmd}
	app.AddCommand(fetchCmd.Command())

	// queries sub-command.
	queriesCmd := cmdQueries{global: &globalCmd}
	app.AddCommand(queriesCmd.Command())

	return app
}

// CheckArgs validates the number of arguments passed to the function and shows the help if incorrect.
func (c *cmdGlobal) CheckArgs(cmd *cobra.Command, args []string, minArgs int, maxArgs int) (bool, error) {
	if len(args) < minArgs || (maxArgs != -1 && len(args) > maxArgs) {
		_ = cmd.Help()

		if len(args) == 0 {
			return true, nil
		}

		return true, fmt.Errorf("Invalid number of arguments")
	}

	return false, nil
}

// rowObject is the one object shape the command line knows: it keeps each
// row as its positional values.
var rowObject = shape.Object("row", shape.AnyArity, func(values []any) (any, error) {
	return values, nil
})

func objects() map[string]shape.Shape {
	return map[string]shape.Shape{"row": rowObject}
}

// loadConfig reads the configuration file, if any, and applies the flag
// overrides.
func (c *cmdGlobal) loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if c.flagConfig != "" {
		var err error
		cfg, err = config.Load(c.flagConfig)
		if err != nil {
			return nil, err
		}
	}

	if c.flagDriver != "" {
		cfg.Driver = c.flagDriver
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if c.flagDatabase != "" {
		cfg.Database.Database = c.flagDatabase
	}
	if cfg.Database.Database == "" && (cfg.Driver == "sqlite" || cfg.Driver == "sqlite3") {
		cfg.Database.Database = ":memory:"
	}
	if c.flagDebug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// buildRegistry builds the statement registry described by cfg.
func (c *cmdGlobal) buildRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	err := cfg.Apply(reg, objects())
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// mapper connects to the configured database. The returned connection must
// be closed by the caller.
func (c *cmdGlobal) mapper(ctx context.Context, cfg *config.Config) (*sqlmapper.Mapper, connector.Connection, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log_level: %w", err)
	}
	log := logger.New(level, os.Stderr)
	logger.Log = log

	reg, err := c.buildRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	keys, err := cfg.KeyNaming()
	if err != nil {
		return nil, nil, err
	}

	conn, err := connector.Open(ctx, cfg.Driver, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}
	log.Debug("Connected", logger.Ctx{"driver": cfg.Driver, "dialect": conn.Dialect().Name()})

	m := sqlmapper.New(connector.Executor(conn), reg, sqlmapper.WithLogger(log), sqlmapper.WithKeyNaming(keys))
	return m, conn, nil
}
