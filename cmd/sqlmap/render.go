package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/sqlmapper/record"
)

// validateFormat validates the value for the command line flag --format.
func validateFormat(value string) error {
	switch strings.SplitN(value, ",", 2)[0] {
	case "csv", "json", "table", "yaml", "compact":
		return nil
	}
	return fmt.Errorf(`Invalid value %q for flag "--format"`, value)
}

// renderTable writes data in the given format. JSON and YAML encode raw
// instead of the string cells.
func renderTable(w io.Writer, format string, header []string, data [][]string, raw any) error {
	fields := strings.SplitN(format, ",", 2)
	format = fields[0]
	if len(fields) == 2 && fields[1] == "noheader" {
		header = nil
	}

	switch format {
	case "table":
		table := baseTable(w, header, data)
		table.SetRowLine(true)
		table.Render()
	case "compact":
		table := baseTable(w, header, data)
		table.SetColumnSeparator("")
		table.SetHeaderLine(false)
		table.SetBorder(false)
		table.Render()
	case "csv":
		cw := csv.NewWriter(w)
		if header != nil {
			err := cw.Write(header)
			if err != nil {
				return err
			}
		}

		err := cw.WriteAll(data)
		if err != nil {
			return err
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(raw)
		if err != nil {
			return err
		}
	case "yaml":
		out, err := yaml.Marshal(raw)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(w, "%s", out)
	default:
		return fmt.Errorf("Invalid format %q", format)
	}

	return nil
}

func baseTable(w io.Writer, header []string, data [][]string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(data)
	return table
}

// renderRows prints fetched rows. Generated records keep their column
// order; map columns are sorted by name.
func renderRows(w io.Writer, format string, rows []any) error {
	header := columnsOf(rows)
	data := make([][]string, 0, len(rows))
	raw := make([]any, 0, len(rows))

	for _, row := range rows {
		cells := make([]string, len(header))
		switch r := row.(type) {
		case record.Record:
			for i, col := range header {
				v, _ := r.Get(col)
				cells[i] = cellString(v)
			}
			raw = append(raw, r.Map())
		case map[string]any:
			for i, col := range header {
				cells[i] = cellString(r[col])
			}
			raw = append(raw, r)
		case []any:
			for i := range cells {
				if i < len(r) {
					cells[i] = cellString(r[i])
				}
			}
			raw = append(raw, r)
		default:
			if len(cells) > 0 {
				cells[0] = cellString(r)
			}
			raw = append(raw, r)
		}
		data = append(data, cells)
	}

	// Records marshal with their own column order.
	if format == "json" {
		return renderTable(w, format, header, data, rows)
	}

	return renderTable(w, format, header, data, raw)
}

// columnsOf derives the table header from the first row.
func columnsOf(rows []any) []string {
	if len(rows) == 0 {
		return nil
	}

	switch r := rows[0].(type) {
	case record.Record:
		return r.Type().Fields()
	case map[string]any:
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	case []any:
		header := make([]string, len(r))
		for i := range header {
			header[i] = "#" + strconv.Itoa(i+1)
		}
		return header
	}
	return []string{"VALUE"}
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}
