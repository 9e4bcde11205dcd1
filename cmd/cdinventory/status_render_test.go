package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"cdinventory/internal/config"
	"cdinventory/internal/preflight"
)

func TestRenderCheck(t *testing.T) {
	cases := []struct {
		name   string
		result preflight.Result
		want   string
	}{
		{
			name:   "pass",
			result: preflight.Result{Name: "Inventory file", Passed: true, Detail: "CDInventory.txt (1 record)"},
			want:   fmt.Sprintf("  [PASS] %-*s %s", statusLabelWidth, "Inventory file", "CDInventory.txt (1 record)"),
		},
		{
			name:   "new",
			result: preflight.Result{Name: "Inventory database", Passed: true, Missing: true, Detail: "inventory.db (not created yet)"},
			want:   fmt.Sprintf("  [NEW] %-*s %s", statusLabelWidth, "Inventory database", "inventory.db (not created yet)"),
		},
		{
			name:   "fail without detail",
			result: preflight.Result{Name: "Session lock"},
			want:   "  [FAIL] Session lock",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderCheck(tc.result, false); got != tc.want {
				t.Fatalf("renderCheck mismatch\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestRenderCheckColorsMarkerOnly(t *testing.T) {
	got := renderCheck(preflight.Result{Name: "Inventory file", Detail: "bad.txt:2"}, true)
	if !strings.HasPrefix(got, "  "+ansiRed+"[FAIL]"+ansiReset) {
		t.Fatalf("expected red marker, got %q", got)
	}
	if !strings.HasSuffix(got, "bad.txt:2") {
		t.Fatalf("expected uncolored detail, got %q", got)
	}
}

func TestRenderSetting(t *testing.T) {
	want := fmt.Sprintf("  %-*s %s", statusLabelWidth, "Backend:", "sqlite")
	if got := renderSetting("Backend", "sqlite"); got != want {
		t.Fatalf("renderSetting mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderHeading(t *testing.T) {
	if got := renderHeading(" Checks ", false); got != "======= Checks =======" {
		t.Fatalf("unexpected heading %q", got)
	}
	if got := renderHeading("Checks", true); got != ansiBold+"======= Checks ======="+ansiReset {
		t.Fatalf("unexpected colored heading %q", got)
	}
}

func TestColorEnabledModes(t *testing.T) {
	cases := []struct {
		mode string
		want bool
	}{
		{mode: config.ColorAlways, want: true},
		{mode: config.ColorNever, want: false},
		{mode: config.ColorAuto, want: false},
	}
	for _, tc := range cases {
		if got := colorEnabled(tc.mode, io.Discard); got != tc.want {
			t.Errorf("colorEnabled(%q) = %v, want %v", tc.mode, got, tc.want)
		}
	}
}
