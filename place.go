package decay

// Attribution: the formatting verbs and escaping below are modeled on
// the frame formatting of https://pkg.go.dev/golang.org/x/xerrors, used
// with the permission available under the software license
// (BSD 3-Clause):
// https://cs.opensource.google/go/x/xerrors/+/master:LICENSE

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/secureworks/decay/internal/runtime"
)

// Place identifies a source position: the file, line and column where
// an annotation was attached to a chain.
//
// Places are meant to be seen, so the following formatting verbs are
// implemented:
//
//	"%s"  – the base name of the file and the line (and column, if known)
//	"%q"  – the same as `%s` but wrapped in `"` delimiters
//	"%d"  – the line number
//	"%v"  – the full path of the file and the line (and column, if known)
//	"%+v" – the same as `%v`, indented by the width if one is given
//	"%#v" – a Golang representation with the type (`decay.Place`)
//
// The Go runtime does not report columns, so places captured with Here
// carry a zero Column, which is left out when formatting. A Place is a
// plain value: compare with ==, copy freely.
type Place struct {
	File   string `json:"file" msgpack:"file"`
	Line   uint32 `json:"line" msgpack:"line"`
	Column uint32 `json:"column,omitempty" msgpack:"column,omitempty"`
}

var _ fmt.Formatter = Place{}

// NewPlace creates a Place from its parts. Use it for synthetic places
// in tests or when replaying positions recorded elsewhere.
func NewPlace(file string, line, column uint32) Place {
	return Place{File: file, Line: line, Column: column}
}

func (p Place) file() string {
	if p.File == "" {
		return "unknown"
	}
	return p.File
}

// short renders the last two path elements, used by the single-line
// debug rendering of chains.
func (p Place) short() string {
	return p.position(runtime.TrimFile(p.file(), 2))
}

func (p Place) position(file string) string {
	var b strings.Builder
	b.WriteString(escaper.Replace(file))
	if p.Line > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.Line), 10))
		if p.Column > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(p.Column), 10))
		}
	}
	return b.String()
}

// String returns the full position, as with the `%v` verb.
func (p Place) String() string { return p.position(p.file()) }

// Format gives Place control over how the location information is
// structured when it is displayed, which in turn lets a PlaceChain
// structure how the whole trail is displayed.
func (p Place) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		io.WriteString(s, p.position(filepath.Base(p.file())))
	case 'q':
		io.WriteString(s, `"`)
		io.WriteString(s, p.position(filepath.Base(p.file())))
		io.WriteString(s, `"`)
	case 'd':
		io.WriteString(s, strconv.FormatUint(uint64(p.Line), 10))
	case 'v':
		switch {
		case s.Flag('+'):
			if width, ok := s.Width(); ok {
				io.WriteString(s, strings.Repeat(" ", width))
			}
			io.WriteString(s, p.String())
		case s.Flag('#'):
			io.WriteString(s, `decay.Place("`)
			io.WriteString(s, p.String())
			io.WriteString(s, `")`)
		default:
			io.WriteString(s, p.String())
		}
	}
}

// escaper escapes the characters that would split a rendered place
// over several lines.
var escaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, `"`, `\"`)

// PlaceChain is the trail of places a single frame of a chain was
// propagated through, most recently added first. A PlaceChain is
// persistent: Prepend returns a new chain sharing the receiver as its
// tail, so a chain is never modified once built and is never empty.
//
// The zero value holds a single zero Place; build chains with ChainOf.
type PlaceChain struct {
	head Place
	tail *PlaceChain
}

var _ interface { // Assert interface implementation.
	fmt.Formatter
	json.Marshaler
	json.Unmarshaler
} = (*PlaceChain)(nil)

// ChainOf returns a chain with place as its head, followed by the older
// places in the order given.
func ChainOf(place Place, older ...Place) PlaceChain {
	var tail *PlaceChain
	for i := len(older) - 1; i >= 0; i-- {
		tail = &PlaceChain{head: older[i], tail: tail}
	}
	return PlaceChain{head: place, tail: tail}
}

// Prepend returns a chain with place as its new head and the receiver
// as its tail. The receiver is left untouched.
func (pc PlaceChain) Prepend(place Place) PlaceChain {
	tail := pc
	return PlaceChain{head: place, tail: &tail}
}

// Head returns the most recently added place.
func (pc PlaceChain) Head() Place { return pc.head }

// Tail returns the chain without its head, or false when the head is
// the only place in the chain.
func (pc PlaceChain) Tail() (PlaceChain, bool) {
	if pc.tail == nil {
		return PlaceChain{}, false
	}
	return *pc.tail, true
}

// Len returns the number of places in the chain, always at least one.
func (pc PlaceChain) Len() int {
	n := 0
	for node := &pc; node != nil; node = node.tail {
		n++
	}
	return n
}

// All iterates over the places, most recently added first.
func (pc PlaceChain) All() iter.Seq[Place] {
	return func(yield func(Place) bool) {
		for node := &pc; node != nil; node = node.tail {
			if !yield(node.head) {
				return
			}
		}
	}
}

// Places copies the chain into a slice, most recently added first.
func (pc PlaceChain) Places() []Place {
	places := make([]Place, 0, pc.Len())
	for p := range pc.All() {
		places = append(places, p)
	}
	return places
}

// Equal reports whether both chains hold the same places in the same
// order.
func (pc PlaceChain) Equal(other PlaceChain) bool {
	a, b := &pc, &other
	for a != nil && b != nil {
		if a.head != b.head {
			return false
		}
		a, b = a.tail, b.tail
	}
	return a == nil && b == nil
}

func (pc PlaceChain) Format(s fmt.State, verb rune) {
	switch verb {
	case 's', 'q', 'd':
		pc.formatSlice(s, verb, [2]string{"[", "]"})
	case 'v':
		switch {
		case s.Flag('+'):
			for p := range pc.All() {
				io.WriteString(s, "\n")
				p.Format(s, verb)
			}
		case s.Flag('#'):
			io.WriteString(s, "decay.PlaceChain")
			pc.formatSlice(s, 'q', [2]string{"{", "}"})
		default:
			pc.formatSlice(s, verb, [2]string{"[", "]"})
		}
	}
}

// formatSlice wraps a list of formatted places with brackets.
func (pc PlaceChain) formatSlice(s fmt.State, verb rune, delimiters [2]string) {
	io.WriteString(s, delimiters[0])
	first := true
	for p := range pc.All() {
		if !first {
			io.WriteString(s, " ")
		}
		p.Format(s, verb)
		first = false
	}
	io.WriteString(s, delimiters[1])
}

// MarshalJSON encodes the chain as an array of places, most recently
// added first:
//
//	[{"file":"/src/app/load.go","line":20},{"file":"/src/app/main.go","line":9}]
func (pc PlaceChain) MarshalJSON() ([]byte, error) {
	return json.Marshal(pc.Places())
}

// UnmarshalJSON decodes an array of places written by MarshalJSON. An
// empty array is rejected with ErrEmptyPlaceChain since a chain always
// holds at least one place.
func (pc *PlaceChain) UnmarshalJSON(byt []byte) error {
	var places []Place
	if err := json.Unmarshal(byt, &places); err != nil {
		return err
	}
	if len(places) == 0 {
		return ErrEmptyPlaceChain
	}
	*pc = ChainOf(places[0], places[1:]...)
	return nil
}

// ErrEmptyPlaceChain is returned when decoding a place chain with no
// places in it.
var ErrEmptyPlaceChain = NewError("empty place chain")
