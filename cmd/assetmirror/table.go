package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"assetmirror/internal/textutil"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// summaryRow is one line of a command summary.
type summaryRow struct {
	label string
	value string
}

func countRow(label string, value int) summaryRow {
	return summaryRow{label: label, value: strconv.Itoa(value)}
}

// printSummary renders the end-of-command table. The status row reflects
// runErr so partial progress is visible after a failure.
func printSummary(out io.Writer, title string, rows []summaryRow, runErr error) {
	tableRows := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		tableRows = append(tableRows, []string{r.label, r.value})
	}
	tableRows = append(tableRows, []string{"status", textutil.Ternary(runErr == nil, "ok", "failed")})
	fmt.Fprintln(out, renderTable([]string{title, ""}, tableRows, []columnAlignment{alignLeft, alignRight}))
}
