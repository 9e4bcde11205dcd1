package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/shell"
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

func renderInventoryTable(records []inventory.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{strconv.Itoa(rec.ID), rec.Title, rec.Artist})
	}
	return renderTable(
		[]string{"ID", "CD Title", "Artist"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	)
}

func writeInventoryTable(w io.Writer, records []inventory.Record) error {
	_, err := fmt.Fprintln(w, renderInventoryTable(records))
	return err
}

// displayFor picks the inventory renderer for a display.style value.
func displayFor(style string, forceTable bool) shell.DisplayFunc {
	if forceTable || style == config.StyleTable {
		return writeInventoryTable
	}
	return inventory.WriteInventory
}
