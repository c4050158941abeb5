package pokernow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// Row is one log entry: the free text line and its raw timestamp.
type Row struct {
	Text      string
	Timestamp string
}

const timestampLayout = "2006-01-02T15:04:05.999999999"

// Time parses the row timestamp. PokerNow writes ISO-8601 with a trailing
// zone designator which is dropped.
func (r Row) Time() (time.Time, error) {
	if r.Timestamp == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	return time.Parse(timestampLayout, r.Timestamp[:len(r.Timestamp)-1])
}

// ReadRows reads a PokerNow CSV export and returns its rows in chronological
// order. The header row, whose first field is "entry", is dropped.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log: %w", err)
		}
		if len(rec) == 0 || rec[0] == "entry" {
			continue
		}
		if len(rec) < 2 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("reading log: line %d: expected at least 2 fields, got %d", line, len(rec))
		}
		rows = append(rows, Row{Text: strings.TrimRight(rec[0], "\r"), Timestamp: rec[1]})
	}
	// exports are newest first
	slices.Reverse(rows)
	return rows, nil
}
