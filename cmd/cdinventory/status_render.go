package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"cdinventory/internal/config"
	"cdinventory/internal/preflight"
)

// checkState is the outcome shown for one storage check.
type checkState int

const (
	checkPass checkState = iota
	checkNew
	checkFail
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
)

const statusLabelWidth = 20

func checkStateOf(result preflight.Result) checkState {
	switch {
	case !result.Passed:
		return checkFail
	case result.Missing:
		return checkNew
	default:
		return checkPass
	}
}

func (s checkState) marker() string {
	switch s {
	case checkNew:
		return "NEW"
	case checkFail:
		return "FAIL"
	default:
		return "PASS"
	}
}

func (s checkState) color() string {
	switch s {
	case checkNew:
		return ansiYellow
	case checkFail:
		return ansiRed
	default:
		return ansiGreen
	}
}

// renderSetting prints one configuration value under its label.
func renderSetting(label, value string) string {
	return fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", value)
}

// renderCheck prints a check result with its marker colored when asked.
func renderCheck(result preflight.Result, colorize bool) string {
	state := checkStateOf(result)
	marker := "[" + state.marker() + "]"
	if colorize {
		marker = state.color() + marker + ansiReset
	}
	line := fmt.Sprintf("  %s %-*s", marker, statusLabelWidth, result.Name)
	if result.Detail != "" {
		line += " " + result.Detail
	}
	return strings.TrimRight(line, " ")
}

// renderHeading frames a section title the way the inventory display does.
func renderHeading(title string, colorize bool) string {
	line := fmt.Sprintf("======= %s =======", strings.TrimSpace(title))
	if colorize {
		return ansiBold + line + ansiReset
	}
	return line
}

// colorEnabled applies display.color to the destination writer.
func colorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
