package decay

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	_ "github.com/secureworks/decay/internal/constraints"
)

// Kind tags the variant of a frame in a chain.
type Kind uint8

const (
	// Rooted ends a chain with an internal failure: only a note and
	// the places it passed through, no wrapped external cause.
	Rooted Kind = iota + 1
	// Leaf ends a chain with an externally defined failure value.
	Leaf
	// Wrapped is an annotation frame on top of another chain.
	Wrapped
)

func (k Kind) String() string {
	switch k {
	case Rooted:
		return "rooted"
	case Leaf:
		return "leaf"
	case Wrapped:
		return "wrapped"
	default:
		return "invalid"
	}
}

// Decay is a chain of annotation frames ending either in an internal
// failure (Rooted) or in a failure value of the outer type O (Leaf).
// Each frame carries the trail of places it was propagated through and
// an optional note.
//
// A chain is built once, where a failure is raised or first observed,
// and is then extended by every layer it propagates through:
//
//	d := decay.New[*FetchError](decay.Here(), decay.NoteOf("root cause"))
//	d = d.FurtherUnnoted(decay.Here())                  // merged: same frame, one more place
//	d = d.Further(decay.Here(), decay.NoteOf("note #2")) // new frame
//
// Steps without a note never grow the chain around a Rooted or Wrapped
// frame: the new place is prepended to that frame's trail, so there is
// one frame per distinct note. A Leaf is always the innermost frame and
// a chain holds at most one.
//
// Operations never modify a chain: each returns a new frame that shares
// the untouched frames below it. A finished chain may therefore be read
// from several goroutines. The zero value is not a valid chain; use
// New, NewUnnoted, Lift or one of the conversion helpers. A nil chain
// means "no failure": every method accepts a nil receiver and reports an
// empty chain.
//
// Decay implements error. Unwrap walks one frame at a time and ends at
// the O value of a Leaf, so errors.Is and errors.As see the whole
// chain. All values implement fmt.Formatter:
//
//	%s    the notes, outermost first, and the outer error's message joined by ": "
//	%v    same as %s
//	%q    same as %s but quoted
//	%+v   a field list: each frame's places (one per line) and note, then the outer error
//	%#v   a single-line debug rendering with short places
type Decay[O error] struct {
	kind   Kind
	note   Note
	places PlaceChain
	inner  *Decay[O]
	outer  O
}

var _ interface { // Assert interface implementation.
	error
	placer
	Unwrap() error
	fmt.Formatter
	slog.LogValuer
	IntoDecay[error]
} = (*Decay[error])(nil)

// New returns a Rooted chain: a failure detected by this code at place,
// not relayed from elsewhere.
func New[O error](place Place, note Note) *Decay[O] {
	return &Decay[O]{kind: Rooted, note: note, places: ChainOf(place)}
}

// NewUnnoted is New without a note.
func NewUnnoted[O error](place Place) *Decay[O] {
	return New[O](place, NoNote)
}

// Further adds a propagation step at place.
//
// When note is absent and the receiver is a Rooted or Wrapped frame, the
// place is merged into that frame's trail and the frame count does not
// change. Otherwise the receiver is wrapped in a new frame holding place
// and note. The receiver itself is never modified. Further on a nil
// chain returns nil.
func (d *Decay[O]) Further(place Place, note Note) *Decay[O] {
	if d == nil {
		return nil
	}
	if note.IsNone() && d.kind != Leaf {
		merged := *d
		merged.places = d.places.Prepend(place)
		return &merged
	}
	return &Decay[O]{
		kind:   Wrapped,
		note:   note,
		places: ChainOf(place),
		inner:  d,
	}
}

// FurtherUnnoted is Further without a note.
func (d *Decay[O]) FurtherUnnoted(place Place) *Decay[O] {
	return d.Further(place, NoNote)
}

// IntoDecay returns the chain itself: a chain needs no conversion.
func (d *Decay[O]) IntoDecay() *Decay[O] { return d }

// Kind returns the variant of the outermost frame. A nil chain has the
// invalid Kind 0.
func (d *Decay[O]) Kind() Kind {
	if d == nil {
		return 0
	}
	return d.kind
}

// Note returns the note of the outermost frame; a Leaf has none.
func (d *Decay[O]) Note() Note {
	if d == nil {
		return NoNote
	}
	return d.note
}

// Places returns the trail of places of the outermost frame, or false
// for a Leaf.
func (d *Decay[O]) Places() (PlaceChain, bool) {
	if d == nil || d.kind == Leaf {
		return PlaceChain{}, false
	}
	return d.places, true
}

// Outer returns the failure value held by a Leaf, or false for any
// other frame.
func (d *Decay[O]) Outer() (O, bool) {
	if d == nil || d.kind != Leaf {
		var zero O
		return zero, false
	}
	return d.outer, true
}

// Inner returns the chain wrapped by a Wrapped frame, or nil.
func (d *Decay[O]) Inner() *Decay[O] {
	if d == nil {
		return nil
	}
	return d.inner
}

// Frames iterates over the frames of the chain from the outermost (most
// recently added) to the innermost (the root cause).
func (d *Decay[O]) Frames() iter.Seq[*Decay[O]] {
	return func(yield func(*Decay[O]) bool) {
		for frame := d; frame != nil; frame = frame.inner {
			if !yield(frame) {
				return
			}
		}
	}
}

// Len returns the number of frames in the chain.
func (d *Decay[O]) Len() int {
	n := 0
	for range d.Frames() {
		n++
	}
	return n
}

// RootView describes the innermost frame of a chain, as returned by
// Root. Kind is Rooted for an internal root cause, with Note and Places
// set; or Leaf for an external one, with Outer set.
type RootView[O error] struct {
	Kind   Kind
	Note   Note
	Places PlaceChain
	Outer  O
}

// Internal reports whether the chain bottoms out in a Rooted frame.
func (r RootView[O]) Internal() bool { return r.Kind == Rooted }

// Root walks to the innermost frame of the chain. A nil chain gives the
// zero RootView, whose Kind is invalid.
func (d *Decay[O]) Root() RootView[O] {
	if d == nil {
		return RootView[O]{}
	}
	frame := d
	for frame.kind == Wrapped {
		frame = frame.inner
	}
	if frame.kind == Leaf {
		return RootView[O]{Kind: Leaf, Outer: frame.outer}
	}
	return RootView[O]{Kind: Rooted, Note: frame.note, Places: frame.places}
}

func (d *Decay[O]) Error() string {
	if d == nil {
		return "<nil>"
	}
	var b strings.Builder
	for frame := range d.Frames() {
		var msg string
		if frame.kind == Leaf {
			msg = frame.outer.Error()
		} else {
			msg, _ = frame.note.Text()
		}
		if msg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(msg)
	}
	if b.Len() == 0 {
		return "decay at " + d.origin().String()
	}
	return b.String()
}

// origin returns the oldest place recorded in the chain.
func (d *Decay[O]) origin() Place {
	var origin Place
	for frame := range d.Frames() {
		if frame.kind == Leaf {
			break
		}
		for p := range frame.places.All() {
			origin = p
		}
	}
	return origin
}

// Unwrap returns the cause of the outermost frame: nil for Rooted, the
// outer failure for Leaf, the inner chain for Wrapped.
func (d *Decay[O]) Unwrap() error {
	if d == nil {
		return nil
	}
	switch d.kind {
	case Leaf:
		return d.outer
	case Wrapped:
		return d.inner
	default:
		return nil
	}
}

func (d *Decay[O]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			d.formatFields(s)
			return
		}
		if s.Flag('#') {
			d.formatDebug(s)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, d.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", d.Error())
	default:
		// empty
	}
}

// formatFields writes one field per line, frames outermost first:
//
//	place:
//	    /src/app/fetch.go:41
//	note: fetching profile
//	error: connection refused
func (d *Decay[O]) formatFields(w io.Writer) {
	first := true
	for frame := range d.Frames() {
		if !first {
			_, _ = io.WriteString(w, "\n")
		}
		first = false
		if frame.kind == Leaf {
			_, _ = fmt.Fprintf(w, "error: %v", frame.outer)
			continue
		}
		_, _ = fmt.Fprintf(w, "place:%+4v", frame.places)
		if text, ok := frame.note.Text(); ok {
			_, _ = fmt.Fprintf(w, "\nnote: %s", text)
		}
	}
}

// formatDebug writes the chain on a single line with short places.
func (d *Decay[O]) formatDebug(w io.Writer) {
	_, _ = io.WriteString(w, "decay.Decay{")
	first := true
	for frame := range d.Frames() {
		if !first {
			_, _ = io.WriteString(w, ", ")
		}
		first = false
		if frame.kind == Leaf {
			_, _ = fmt.Fprintf(w, "error: %q", frame.outer.Error())
			continue
		}
		_, _ = io.WriteString(w, "place: [")
		sep := ""
		for p := range frame.places.All() {
			_, _ = io.WriteString(w, sep+p.short())
			sep = " "
		}
		_, _ = io.WriteString(w, "]")
		if text, ok := frame.note.Text(); ok {
			_, _ = fmt.Fprintf(w, ", note: %q", text)
		}
	}
	_, _ = io.WriteString(w, "}")
}

// LogValue renders the chain as a log/slog group: the message, the
// number of frames, the most recent place and, for a chain ending in a
// Leaf, the outer failure. A nil chain logs as an empty group.
func (d *Decay[O]) LogValue() slog.Value {
	if d == nil {
		return slog.GroupValue()
	}
	attrs := []slog.Attr{
		slog.String("msg", d.Error()),
		slog.Int("frames", d.Len()),
	}
	if places, ok := d.Places(); ok {
		attrs = append(attrs, slog.String("at", places.Head().String()))
	}
	if root := d.Root(); !root.Internal() {
		attrs = append(attrs, slog.String("cause", root.Outer.Error()))
	}
	return slog.GroupValue(attrs...)
}
