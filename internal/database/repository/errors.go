package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Reason classifies a store failure.
type Reason int

const (
	ReasonBackend Reason = iota
	ReasonNotFound
	ReasonConstraint
	ReasonInvalid
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not found"
	case ReasonConstraint:
		return "constraint violation"
	case ReasonInvalid:
		return "invalid request"
	}
	return "backend error"
}

// ErrNotFound matches any *Error whose reason is ReasonNotFound.
var ErrNotFound = errors.New("record not found")

// Error is returned by every Store operation that fails.
type Error struct {
	Op     string
	Table  string
	ID     int64
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	target := e.Table
	if e.ID != 0 {
		target = fmt.Sprintf("%s #%d", e.Table, e.ID)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, target, e.Reason)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Reason == ReasonNotFound
}

// ReasonOf extracts the failure reason from err; untyped errors are backend errors.
func ReasonOf(err error) Reason {
	var se *Error
	if errors.As(err, &se) {
		return se.Reason
	}
	return ReasonBackend
}

func wrap(op, table string, id int64, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Table: table, ID: id, Reason: classify(err), Err: err}
}

func notFound(op, table string, id int64) error {
	return &Error{Op: op, Table: table, ID: id, Reason: ReasonNotFound, Err: ErrNotFound}
}

func invalid(op, table string, format string, args ...any) error {
	return &Error{Op: op, Table: table, Reason: ReasonInvalid, Err: fmt.Errorf(format, args...)}
}

func classify(err error) Reason {
	var lite sqlite3.Error
	if errors.As(err, &lite) && lite.Code == sqlite3.ErrConstraint {
		return ReasonConstraint
	}
	var pg *pq.Error
	if errors.As(err, &pg) && pg.Code.Class() == "23" {
		return ReasonConstraint
	}
	return ReasonBackend
}
