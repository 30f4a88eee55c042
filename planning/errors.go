package planning

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrorKind classifies a returned error per spec section 7.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	KindOutOfGrid
	KindNotTraversable
	KindInternal
)

// Sentinel errors. Call sites wrap these with errors.Wrapf so the message
// stays specific while ClassifyError can still recover the kind.
var (
	// ErrOutOfGrid is a client error: the requested pose is not inside
	// the elevation map.
	ErrOutOfGrid = errors.New("pose is outside the traversability grid")
	// ErrNotTraversable is a client error: start/goal cannot be expanded,
	// or fails the orientation or collision test.
	ErrNotTraversable = errors.New("pose is not traversable")
	// ErrInternal marks a violated invariant: a config/map mismatch that
	// aborts the plan rather than filtering out a candidate.
	ErrInternal = errors.New("internal planner invariant violated")
)

// ClassifyError recovers the ErrorKind of an error returned by this
// package, or KindUnknown if err does not wrap one of the sentinels.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case stderrors.Is(err, ErrOutOfGrid):
		return KindOutOfGrid
	case stderrors.Is(err, ErrNotTraversable):
		return KindNotTraversable
	case stderrors.Is(err, ErrInternal):
		return KindInternal
	default:
		return KindUnknown
	}
}

// internalf reports a fatal invariant violation, logging it before
// returning since Internal errors are not expected to be recovered from.
func (e *Environment) internalf(format string, args ...interface{}) error {
	err := errors.Wrapf(ErrInternal, format, args...)
	e.cfg.logger().Errorw("internal invariant violated", "error", err)
	return err
}

func notTraversablef(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotTraversable, format, args...)
}

func outOfGridf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfGrid, format, args...)
}
