package decay

import (
	"fortio.org/safecast"

	"github.com/secureworks/decay/internal/runtime"
)

// Here returns the Place of its caller.
func Here() Place {
	return placeAt(1)
}

// HereAt returns the Place of a frame further up the caller's stack.
// The argument skip is the number of frames to skip over: HereAt(0) is
// the same as Here.
func HereAt(skip int) Place {
	return placeAt(skip + 1)
}

// Newf returns a new Rooted chain noted with the formatted text and
// placed at its caller. An empty format gives an unnoted chain:
//
//	if n > limit {
//	    return decay.Newf[*LoadError]("limit exceeded: %d > %d", n, limit)
//	}
func Newf[O error](format string, values ...interface{}) *Decay[O] {
	return New[O](placeAt(1), Notef(format, values...))
}

// Rot returns a single-use transformation lifting a foreign failure
// into a chain annotated at the caller of Rot. It is the idiom for the
// boundary where a failure is first observed:
//
//	n, err := strconv.Atoi(raw)
//	if err != nil {
//	    return decay.Rot[error]("parsing %q", raw)(err)
//	}
//
// An empty format gives an unnoted step.
func Rot[O error](format string, values ...interface{}) func(O) *Decay[O] {
	return Morph[O](placeAt(1), Notef(format, values...))
}

// RotWith is Rot for values that must first be converted into O.
func RotWith[O error, E any](conv func(E) O, format string, values ...interface{}) func(E) *Decay[O] {
	return MorphWith(placeAt(1), Notef(format, values...), conv)
}

// Rotf adds a step placed at its caller, noted with the formatted text
// (unnoted for an empty format). See Further.
func (d *Decay[O]) Rotf(format string, values ...interface{}) *Decay[O] {
	return d.Further(placeAt(1), Notef(format, values...))
}

// placeAt translates a position from the internal runtime utilities
// into a Place. skip counts from the caller of placeAt.
//
//go:noinline
func placeAt(skip int) Place {
	file, line := runtime.Location(skip + 1)
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		l = 0
	}
	return Place{File: file, Line: l}
}
