package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	duckhttp "github.com/duckhttp/duckhttp-go"
)

func writeResult(w io.Writer, format string, columns []duckhttp.Column, rows []duckhttp.Row) error {
	switch format {
	case "json":
		return writeJSON(w, columns, rows)
	case "csv":
		return writeCSV(w, columns, rows)
	default:
		return writeTable(w, columns, rows)
	}
}

var headerColor = color.New(color.FgCyan, color.Bold)

func writeTable(w io.Writer, columns []duckhttp.Column, rows []duckhttp.Row) error {
	if len(rows) == 0 && len(columns) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	for i, column := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}

		headerColor.Fprint(tw, column.Name)
	}

	fmt.Fprintln(tw)

	for _, row := range rows {
		for i, value := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}

			fmt.Fprint(tw, formatValue(value))
		}

		fmt.Fprintln(tw)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d rows\n", len(rows))

	return err
}

func writeJSON(w io.Writer, columns []duckhttp.Column, rows []duckhttp.Row) error {
	records := make([]map[string]any, len(rows))

	for i, row := range rows {
		record := make(map[string]any, len(columns))

		for j, column := range columns {
			if j < len(row) {
				record[column.Name] = row[j]
			}
		}

		records[i] = record
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(records)
}

func writeCSV(w io.Writer, columns []duckhttp.Column, rows []duckhttp.Row) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(columns))

	for i, column := range columns {
		header[i] = column.Name
	}

	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(row))

		for i, value := range row {
			record[i] = formatValue(value)
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func formatValue(value any) string {
	if value == nil {
		return "NULL"
	}

	return fmt.Sprint(value)
}
