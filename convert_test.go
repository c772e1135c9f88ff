package decay

import (
	"io"
	"net/http"
	"testing"

	"github.com/secureworks/decay/internal/testutils"
)

func TestFromChain(t *testing.T) {
	c := rootedChain()
	testutils.AssertEqual(t, c, FromChain[*codeError](c))
	testutils.AssertEqual(t, (*Decay[*codeError])(nil), FromChain[*codeError](nil))
}

func TestLiftPassesChainsThrough(t *testing.T) {
	inner := New[error](placeStore, NoteOf("root cause"))

	// A chain of outer type error is itself an error: it must not end up
	// inside another chain's Leaf.
	var err error = inner
	d := Lift(err)
	testutils.AssertEqual(t, inner, d)
	testutils.AssertEqual(t, Rooted, d.Kind())

	// A chain of another outer type is a foreign failure like any other.
	foreign := Lift[error](rootedChain())
	testutils.AssertEqual(t, Leaf, foreign.Kind())
	testutils.AssertEqual(t, "note #2: root cause", foreign.Error())
}

func TestLiftWith(t *testing.T) {
	conv := func(code int) *codeError { return &codeError{Code: code} }

	d := LiftWith(404, conv)
	testutils.AssertEqual(t, Leaf, d.Kind())
	testutils.AssertEqual(t, "code 404", d.Error())

	t.Run("chain passes through", func(t *testing.T) {
		c := leafChain()
		called := false
		d := LiftWith(c, func(*Decay[*codeError]) *codeError {
			called = true
			return nil
		})
		testutils.AssertEqual(t, c, d)
		testutils.AssertEqual(t, false, called)
	})

	t.Run("conversion to nil", func(t *testing.T) {
		d := LiftWith(0, func(int) *codeError { return nil })
		testutils.AssertEqual(t, (*Decay[*codeError])(nil), d)
	})
}

func TestLiftThrough(t *testing.T) {
	statusText := func(code int) string { return http.StatusText(code) }
	fromText := func(msg string) *codeError { return &codeError{Msg: msg} }

	d := LiftThrough(http.StatusServiceUnavailable, statusText, fromText)
	testutils.AssertEqual(t, Leaf, d.Kind())
	testutils.AssertEqual(t, "Service Unavailable", d.Error())

	t.Run("chain passes through", func(t *testing.T) {
		c := leafChain()
		d := LiftThrough(c,
			func(*Decay[*codeError]) string { return "" },
			fromText)
		testutils.AssertEqual(t, c, d)
	})
}

func TestMorph(t *testing.T) {
	d := Morph[error](placeService, NoteOf("calling upstream"))(io.ErrUnexpectedEOF)

	testutils.AssertEqual(t, Wrapped, d.Kind())
	testutils.AssertEqual(t, 2, d.Len())
	testutils.AssertErrorMessage(t, "calling upstream: unexpected EOF", d)
	testutils.AssertEqual(t, true, Is(d, io.ErrUnexpectedEOF))

	t.Run("existing chain is extended, not wrapped", func(t *testing.T) {
		var err error = New[error](placeStore, NoteOf("root cause"))
		d := Morph[error](placeService, NoteOf("calling upstream"))(err)
		testutils.AssertEqual(t, 2, d.Len())
		testutils.AssertEqual(t, Rooted, d.Root().Kind)
	})

	t.Run("nil", func(t *testing.T) {
		testutils.AssertEqual(t, (*Decay[error])(nil), Morph[error](placeService, NoNote)(nil))
	})
}

func TestMorphUnnoted(t *testing.T) {
	var err error = New[error](placeStore, NoteOf("root cause"))

	d := MorphUnnoted[error](placeService)(err)
	testutils.AssertEqual(t, 1, d.Len())
	places, _ := d.Places()
	testutils.AssertEqual(t, []Place{placeService, placeStore}, places.Places())

	leaf := MorphUnnoted[error](placeService)(io.EOF)
	testutils.AssertEqual(t, 2, leaf.Len())
	testutils.AssertEqual(t, true, leaf.Note().IsNone())
}

func TestMorphWith(t *testing.T) {
	conv := func(code int) *codeError { return &codeError{Code: code} }
	d := MorphWith(placeHandler, NoteOf("ctx"), conv)(418)

	testutils.AssertErrorMessage(t, "ctx: code 418", d)
	testutils.AssertEqual(t, Leaf, d.Inner().Kind())
}

func TestMorphChain(t *testing.T) {
	d := MorphChain[*codeError](placeHandler, NoteOf("outermost"))(rootedChain())

	testutils.AssertEqual(t, 3, d.Len())
	testutils.AssertErrorMessage(t, "outermost: note #2: root cause", d)

	merged := MorphChain[*codeError](placeHandler, NoNote)(rootedChain())
	testutils.AssertEqual(t, 2, merged.Len())
}
