package forkjoin

import (
	"errors"
	"fmt"
)

const Namespace = "forkjoin"

// ErrPanicked is wrapped by the error returned for a segment whose callback panicked.
var ErrPanicked = errors.New(Namespace + ": segment callback panicked")

// SegmentError tags a callback failure with the segment that produced it.
type SegmentError struct {
	err     error
	segment int
	lo, hi  int
}

func newSegmentError(err error, segment, lo, hi int) error {
	if err == nil {
		return nil
	}
	return &SegmentError{err: err, segment: segment, lo: lo, hi: hi}
}

func (e *SegmentError) Error() string { return e.err.Error() }
func (e *SegmentError) Unwrap() error { return e.err }

// Segment returns the index of the failed segment within its group.
func (e *SegmentError) Segment() int { return e.segment }

// Bounds returns the half-open index range the failed segment was responsible for.
func (e *SegmentError) Bounds() (lo, hi int) { return e.lo, e.hi }

func (e *SegmentError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "segment(index=%d,range=[%d,%d)): %+v", e.segment, e.lo, e.hi, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractSegment returns the outermost segment index carried by err, if any.
func ExtractSegment(err error) (int, bool) {
	var se *SegmentError
	if errors.As(err, &se) {
		return se.segment, true
	}
	return 0, false
}
