package main

import (
	"bytes"
	"strings"
	"testing"

	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
)

func TestRenderTableEmptyHeaders(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}, nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderInventoryTable(t *testing.T) {
	out := renderInventoryTable([]inventory.Record{
		{ID: 1, Title: "Blue", Artist: "Joni Mitchell"},
		{ID: 120, Title: "Low", Artist: "David Bowie"},
	})
	lines := strings.Split(out, "\n")
	// top border, header, separator, two rows, bottom border
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	for _, want := range []string{"ID", "CD Title", "Artist", "Joni Mitchell", "120"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q:\n%s", want, out)
		}
	}
}

func TestDisplayForStyle(t *testing.T) {
	records := []inventory.Record{{ID: 1, Title: "Blue", Artist: "Joni Mitchell"}}

	var classic bytes.Buffer
	if err := displayFor(config.StyleClassic, false)(&classic, records); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(classic.String(), "======= The Current Inventory: =======") {
		t.Fatalf("expected classic layout, got %q", classic.String())
	}

	for _, tc := range []struct {
		style string
		force bool
	}{
		{style: config.StyleTable},
		{style: config.StyleClassic, force: true},
	} {
		var buf bytes.Buffer
		if err := displayFor(tc.style, tc.force)(&buf, records); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(buf.String(), "=======") || !strings.Contains(buf.String(), "CD Title") {
			t.Fatalf("expected table layout for %+v, got %q", tc, buf.String())
		}
	}
}
