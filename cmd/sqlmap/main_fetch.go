package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/sqlmapper"
	"github.com/Konsultn-Engineering/sqlmapper/schema"
	"github.com/Konsultn-Engineering/sqlmapper/shape"
)

type cmdFetch struct {
	global *cmdGlobal

	flagNamed  bool
	flagParams []string
	flagShape  string
	flagOne    bool
	flagFormat string
}

// Command generates the command definition.
func (c *cmdFetch) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "fetch <sql|name>"
	cmd.Short = "Run a statement and print its rows"
	cmd.Long = `Description:
  Run a statement and print its rows

  The statement is either SQL text or, with --named, the name of a query
  from the configuration file. Each --param fills the next ? placeholder;
  values that parse as integers or floats are passed as numbers.
`
	cmd.Example = `  sqlmap fetch -d app.db "SELECT id, name FROM foos WHERE id > ?" --param 10
  sqlmap fetch -c sqlmap.yaml --named foos --shape map --format json`
	cmd.RunE = c.Run
	cmd.Flags().BoolVar(&c.flagNamed, "named", false, "Treat the argument as a registered query name")
	cmd.Flags().StringArrayVarP(&c.flagParams, "param", "p", nil, "Placeholder value, repeat for each ?"+"``")
	cmd.Flags().StringVarP(&c.flagShape, "shape", "s", "", "Result shape (struct|map|object:row)"+"``")
	cmd.Flags().BoolVar(&c.flagOne, "one", false, "Only print the first row")
	cmd.Flags().StringVarP(&c.flagFormat, "format", "f", "table", "Format (csv|json|table|yaml|compact)"+"``")

	return cmd
}

// Run runs the actual command logic.
func (c *cmdFetch) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	err = validateFormat(c.flagFormat)
	if err != nil {
		return err
	}

	s, err := shape.Parse(c.flagShape, objects())
	if err != nil {
		return err
	}

	cfg, err := c.global.loadConfig()
	if err != nil {
		return err
	}

	m, conn, err := c.global.mapper(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	req := sqlmapper.Request{Query: sqlmapper.SQL(args[0]), Shape: s}
	if c.flagNamed {
		req.Query = sqlmapper.Named(args[0])
	}
	if len(c.flagParams) > 0 {
		req.Params = parseParams(c.flagParams)
	}

	rows := []any{}
	if c.flagOne {
		row, ok, err := m.FetchOne(cmd.Context(), req)
		if err != nil {
			return err
		}
		if ok {
			rows = []any{row}
		}
	} else {
		rows, err = m.Fetch(cmd.Context(), req)
		if err != nil {
			return err
		}
	}

	err = renderRows(cmd.OutOrStdout(), c.flagFormat, rows)
	if err != nil {
		return err
	}

	if c.flagFormat == "table" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), schema.Quantify("row", len(rows)))
	}

	return nil
}

// parseParams types each command line value as an int64, then a decimal
// float64, falling back to the string itself.
func parseParams(values []string) []any {
	params := make([]any, len(values))
	for i, v := range values {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			params[i] = n
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(v, "xX") {
			params[i] = f
			continue
		}
		params[i] = v
	}
	return params
}
