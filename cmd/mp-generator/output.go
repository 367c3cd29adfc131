package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format is a command output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (valid: table, json, yaml)", s)
	}
}

// TableData represents tabular data for table output.
type TableData struct {
	Headers []string
	Rows    [][]string
}

// Formatter prints command output.
type Formatter struct {
	Format Format
	Writer io.Writer
}

// Print writes data as JSON or YAML. Table format falls back to JSON.
func (f *Formatter) Print(data any) error {
	if f.Format == FormatYAML {
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)

		defer func() { _ = enc.Close() }()

		return enc.Encode(data)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(f.Writer, string(out))

	return err
}

// PrintTable prints rows as a table, or as a list of objects for non-table formats.
func (f *Formatter) PrintTable(data TableData) error {
	if f.Format != FormatTable {
		rows := make([]map[string]string, len(data.Rows))

		for i, row := range data.Rows {
			rowMap := make(map[string]string, len(row))

			for j, cell := range row {
				if j < len(data.Headers) {
					rowMap[strings.ToLower(data.Headers[j])] = cell
				}
			}

			rows[i] = rowMap
		}

		return f.Print(rows)
	}

	table := tablewriter.NewWriter(f.Writer)
	table.SetHeader(data.Headers)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(data.Rows)
	table.Render()

	return nil
}
