package inventory

import (
	"bufio"
	"fmt"
	"io"
)

const (
	inventoryHeader = "======= The Current Inventory: ======="
	inventoryFooter = "======================================"
	inventoryLegend = "ID\tCD Title (by: Artist)"
)

// WriteInventory renders records in the classic shell layout: a banner, a
// column legend, one tab-separated line per record, and a closing rule.
func WriteInventory(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, inventoryHeader)
	fmt.Fprintln(bw, inventoryLegend)
	fmt.Fprintln(bw)
	for _, rec := range records {
		fmt.Fprintf(bw, "%d\t%s (by:%s)\n", rec.ID, rec.Title, rec.Artist)
	}
	fmt.Fprintln(bw, inventoryFooter)
	return bw.Flush()
}
