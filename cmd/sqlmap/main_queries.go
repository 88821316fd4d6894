package main

import (
	"github.com/spf13/cobra"
)

type cmdQueries struct {
	global *cmdGlobal

	flagFormat string
}

type queryInfo struct {
	Name  string `json:"name" yaml:"name"`
	Shape string `json:"shape" yaml:"shape"`
	SQL   string `json:"sql" yaml:"sql"`
}

// Command generates the command definition.
func (c *cmdQueries) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "queries"
	cmd.Short = "List the registered queries"
	cmd.Long = `Description:
  List the registered queries

  This renders the queries from the configuration file with the shape
  their rows are coerced into when a fetch does not pick one.
`
	cmd.RunE = c.Run
	cmd.Flags().StringVarP(&c.flagFormat, "format", "f", "table", "Format (csv|json|table|yaml|compact)"+"``")

	return cmd
}

// Run runs the actual command logic.
func (c *cmdQueries) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 0, 0)
	if exit {
		return err
	}

	err = validateFormat(c.flagFormat)
	if err != nil {
		return err
	}

	cfg, err := c.global.loadConfig()
	if err != nil {
		return err
	}

	reg, err := c.global.buildRegistry(cfg)
	if err != nil {
		return err
	}

	// Generate the table.
	infos := []queryInfo{}
	data := [][]string{}
	for _, name := range reg.Names() {
		m, err := reg.Lookup(name)
		if err != nil {
			return err
		}

		info := queryInfo{Name: m.Name, Shape: m.Shape.Or(reg.DefaultShape()).String(), SQL: m.Statement}
		infos = append(infos, info)
		data = append(data, []string{info.Name, info.Shape, info.SQL})
	}

	header := []string{
		"NAME",
		"SHAPE",
		"SQL",
	}

	return renderTable(cmd.OutOrStdout(), c.flagFormat, header, data, infos)
}
