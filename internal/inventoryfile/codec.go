package inventoryfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cdinventory/internal/inventory"
)

// Format selects the on-disk line encoding.
type Format string

const (
	// FormatPlain writes id,title,artist with no quoting. A comma inside a
	// title or artist makes the line ambiguous on reload.
	FormatPlain Format = "plain"
	// FormatQuoted writes RFC 4180 records, quoting only fields that contain
	// the delimiter, quotes, or leading whitespace. Comma-free records are
	// byte-identical to FormatPlain. A line is read as quoted only when it is
	// in the encoder's canonical form, so plain files decode unchanged. Line
	// breaks inside fields are rejected on encode.
	FormatQuoted Format = "quoted"
)

const (
	delimiter   = ","
	fieldsInRow = 3
)

// ParseFormat validates a configured format name. Empty selects FormatPlain.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatPlain:
		return FormatPlain, nil
	case FormatQuoted:
		return FormatQuoted, nil
	default:
		return "", fmt.Errorf("unsupported inventory format %q", value)
	}
}

// Decode reads every record from r. Decoding stops at the first malformed
// line and returns a *inventory.FormatError carrying its line number.
func Decode(r io.Reader, format Format) ([]inventory.Record, error) {
	if format == FormatQuoted {
		return decodeQuoted(r)
	}
	return decodePlain(r)
}

func decodePlain(r io.Reader) ([]inventory.Record, error) {
	var records []inventory.Record
	err := eachLine(r, func(line string, lineNo int) error {
		rec, err := recordFromFields(strings.Split(line, delimiter), line, lineNo)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// decodeQuoted reads one record per line. A line is taken as quoted only when
// it is exactly what the quoted encoder writes for its three fields. Any other
// line, such as a plain title that starts with a quote, is split like plain.
func decodeQuoted(r io.Reader) ([]inventory.Record, error) {
	var records []inventory.Record
	err := eachLine(r, func(line string, lineNo int) error {
		if line == "" {
			return nil
		}
		fields, ok := canonicalQuotedFields(line)
		if !ok {
			fields = strings.Split(line, delimiter)
		}
		rec, err := recordFromFields(fields, line, lineNo)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func canonicalQuotedFields(line string) ([]string, bool) {
	if !strings.Contains(line, `"`) {
		return nil, false
	}
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = fieldsInRow
	fields, err := reader.Read()
	if err != nil {
		return nil, false
	}
	var buf strings.Builder
	cw := csv.NewWriter(&buf)
	if err := cw.Write(fields); err != nil {
		return nil, false
	}
	cw.Flush()
	if cw.Error() != nil || strings.TrimSuffix(buf.String(), "\n") != line {
		return nil, false
	}
	return fields, true
}

// eachLine calls fn with every whitespace-trimmed line of r and its 1-based
// number. Lines are not length limited.
func eachLine(r io.Reader, fn func(line string, lineNo int) error) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			lineNo++
			if fnErr := fn(strings.TrimSpace(raw), lineNo); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read inventory: %w", err)
		}
	}
}

// recordFromFields keeps the first three fields; anything past the artist is
// dropped, matching how historic inventory files were read.
func recordFromFields(fields []string, raw string, lineNo int) (inventory.Record, error) {
	if len(fields) < fieldsInRow {
		return inventory.Record{}, &inventory.FormatError{
			Value:  raw,
			Reason: fmt.Sprintf("want %d comma-separated fields, got %d:", fieldsInRow, len(fields)),
			Line:   lineNo,
		}
	}
	id, err := inventory.ParseID(fields[0])
	if err != nil {
		var fe *inventory.FormatError
		if errors.As(err, &fe) {
			fe.Line = lineNo
		}
		return inventory.Record{}, err
	}
	return inventory.Record{ID: id, Title: fields[1], Artist: fields[2]}, nil
}

// Encode writes one newline-terminated line per record.
func Encode(w io.Writer, records []inventory.Record, format Format) error {
	if format == FormatQuoted {
		cw := csv.NewWriter(w)
		row := make([]string, fieldsInRow)
		for _, rec := range records {
			if hasLineBreak(rec.Title) || hasLineBreak(rec.Artist) {
				return &inventory.FormatError{
					Value:  rec.Title,
					Reason: fmt.Sprintf("record %d contains a line break", rec.ID),
				}
			}
			row[0] = strconv.Itoa(rec.ID)
			row[1] = rec.Title
			row[2] = rec.Artist
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("encode record %d: %w", rec.ID, err)
			}
		}
		cw.Flush()
		return cw.Error()
	}

	bw := bufio.NewWriter(w)
	for _, rec := range records {
		line := strconv.Itoa(rec.ID) + delimiter + rec.Title + delimiter + rec.Artist + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("encode record %d: %w", rec.ID, err)
		}
	}
	return bw.Flush()
}

// Ambiguous reports whether rec cannot be written in plain format without
// corrupting the field layout on reload.
func Ambiguous(rec inventory.Record) bool {
	return strings.Contains(rec.Title, delimiter) || strings.Contains(rec.Artist, delimiter) ||
		hasLineBreak(rec.Title) || hasLineBreak(rec.Artist)
}

func hasLineBreak(value string) bool {
	return strings.ContainsAny(value, "\r\n")
}
