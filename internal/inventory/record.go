package inventory

import (
	"context"
	"strconv"
	"strings"
)

// Record is a single CD entry.
type Record struct {
	ID     int    `json:"id" yaml:"id" toml:"id"`
	Title  string `json:"title" yaml:"title" toml:"title"`
	Artist string `json:"artist" yaml:"artist" toml:"artist"`
}

// Backend loads and saves a full record sequence. Implementations are
// stateless with respect to the Store: Load returns a fresh slice and Save
// rewrites the whole target.
type Backend interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
	// Location describes where records are persisted, for user messages.
	Location() string
}

// ParseID converts user or file text into a record ID. Surrounding
// whitespace is ignored and a leading sign is accepted.
func ParseID(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &FormatError{Value: raw, Reason: "ID is not an integer", Err: err}
	}
	return id, nil
}
