package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// Store is the ordered record table for one editing session. It is not safe
// for concurrent use.
type Store struct {
	records []Record
}

// NewStore returns a store seeded with a copy of records.
func NewStore(records ...Record) *Store {
	s := &Store{}
	s.Replace(records)
	return s
}

// Add coerces id to an integer and appends a new record. The store is left
// unchanged when id is not numeric. Duplicate IDs are accepted.
func (s *Store) Add(id, title, artist string) (Record, error) {
	parsed, err := ParseID(id)
	if err != nil {
		return Record{}, err
	}
	rec := Record{ID: parsed, Title: title, Artist: artist}
	s.Append(rec)
	return rec, nil
}

// Append adds an already typed record to the end of the table.
func (s *Store) Append(rec Record) {
	s.records = append(s.records, rec)
}

// Remove deletes the first record whose ID matches and reports whether a
// record was removed. Later duplicates are left in place.
func (s *Store) Remove(id int) bool {
	for i, rec := range s.records {
		if rec.ID != id {
			continue
		}
		s.records = append(s.records[:i], s.records[i+1:]...)
		return true
	}
	return false
}

// Replace discards the current contents and installs a copy of records.
func (s *Store) Replace(records []Record) {
	if len(records) == 0 {
		s.records = nil
		return
	}
	s.records = make([]Record, len(records))
	copy(s.records, records)
}

// Snapshot returns a copy of the records in insertion order.
func (s *Store) Snapshot() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records held.
func (s *Store) Len() int {
	return len(s.records)
}

// Find returns records whose title or artist contains query, compared under
// Unicode case folding. An empty query matches everything.
func (s *Store) Find(query string) []Record {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))
	var out []Record
	for _, rec := range s.records {
		if needle == "" ||
			strings.Contains(folder.String(rec.Title), needle) ||
			strings.Contains(folder.String(rec.Artist), needle) {
			out = append(out, rec)
		}
	}
	return out
}
