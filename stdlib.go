package decay

// These are the exported package functions defined in the standard
// library errors package. They are mirrored here so that code building
// chains can import this package alone.

import stderrors "errors"

// NewError returns an error that formats as the given text, like the
// standard library's errors.New (the name New is taken by the chain
// constructor). Each call returns a distinct error value even if the
// text is identical.
func NewError(text string) error { return stderrors.New(text) }

// Unwrap returns the result of calling the Unwrap method on err, if
// err's type contains an Unwrap method returning error. Otherwise,
// Unwrap returns nil.
func Unwrap(err error) error { return stderrors.Unwrap(err) }

// Is reports whether any error in err's tree matches target. Chains
// unwrap one frame at a time down to their outer failure, so Is sees
// through them.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target, and if
// so, sets target to that error value and returns true. Otherwise, it
// returns false. See AsChain for a typed shorthand.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Join returns an error that wraps the given errors, discarding nil
// values. Join returns nil if every value in errs is nil.
func Join(errs ...error) error { return stderrors.Join(errs...) }
