package pokernow

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrMalformedAmount = errors.New("malformed amount")
	ErrMalformedLine   = errors.New("malformed line")
	ErrInvalidAction   = errors.New("invalid action")
)

// ParseError is a structural problem that aborts parsing of a whole log.
type ParseError struct {
	// Row is the 1-based chronological row index, 0 when not tied to a row.
	Row  int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("log parsing: %v: %q", e.Err, e.Text)
	}
	return fmt.Sprintf("log parsing: row %d: %v: %q", e.Row, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }
