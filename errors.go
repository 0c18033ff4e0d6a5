package flatdawg

import (
	"errors"
	"fmt"
)

// Format errors.
var (
	ErrBadMagic  = errors.New("flatdawg: file identifier mismatch")
	ErrTruncated = errors.New("flatdawg: truncated data")
	ErrTooLarge  = errors.New("flatdawg: edge count exceeds addressable range")
	ErrCorrupt   = errors.New("flatdawg: corrupt graph")
)

// Builder errors. ErrOutOfOrder, ErrWordTooLong and ErrEmptyWord leave the
// builder usable; ErrGraphFull, ErrTableFull and ErrFrameFull end the run.
var (
	ErrOutOfOrder     = errors.New("flatdawg: word out of order")
	ErrWordTooLong    = errors.New("flatdawg: word too long")
	ErrEmptyWord      = errors.New("flatdawg: empty word")
	ErrGraphFull      = errors.New("flatdawg: graph is full")
	ErrTableFull      = errors.New("flatdawg: hash table is full")
	ErrFrameFull      = errors.New("flatdawg: too many edges in one node")
	ErrNotStarted     = errors.New("flatdawg: builder not started")
	ErrAlreadyStarted = errors.New("flatdawg: builder already started")
	ErrFinished       = errors.New("flatdawg: builder already finished")
	ErrBuilderFailed  = errors.New("flatdawg: builder failed, call Reset")
	ErrInvalidOption  = errors.New("flatdawg: invalid option")
)

// FormatError reports a short read while loading a graph. Err holds the
// underlying reader error, if any.
type FormatError struct {
	Field    string
	Expected int
	Got      int
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("flatdawg: couldn't read %s: expected %d bytes but got %d", e.Field, e.Expected, e.Got)
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTruncated}
	}
	return []error{ErrTruncated, e.Err}
}

// WriteError reports a failed or short write while saving a graph.
type WriteError struct {
	Field string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("flatdawg: couldn't write %s: %v", e.Field, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// OrderError is returned by AddWord when a word sorts before the words
// already added.
type OrderError struct {
	Word   string
	Pos    int
	Got    byte // 0 when Word ends at Pos
	Staged byte
}

func (e *OrderError) Error() string {
	if e.Pos >= len(e.Word) {
		return fmt.Sprintf("flatdawg: word out of order: %q ends at [%d], before staged %q", e.Word, e.Pos, e.Staged)
	}
	return fmt.Sprintf("flatdawg: word out of order: %q[%d] (%q < %q)", e.Word, e.Pos, e.Got, e.Staged)
}

func (e *OrderError) Unwrap() error { return ErrOutOfOrder }

// WordError is returned by AddWord for words that cannot be stored.
type WordError struct {
	Word string
	Max  int
	Err  error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("%v (%q is %d chars, max is %d)", e.Err, e.Word, len(e.Word), e.Max)
}

func (e *WordError) Unwrap() error { return e.Err }

// diagnostic keeps the last error reported by an operation so callers can
// inspect it after the fact.
type diagnostic struct {
	last error
}

func (d *diagnostic) fail(err error) error {
	d.last = err
	return err
}

// Err returns the last error recorded, or nil.
func (d *diagnostic) Err() error { return d.last }
