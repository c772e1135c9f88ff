package decay

import (
	"fmt"
	"io"
	"testing"

	"github.com/secureworks/decay/internal/testutils"
)

func TestPlacesFrom(t *testing.T) {
	t.Run("rooted chain behind a fmt wrapper", func(t *testing.T) {
		err := fmt.Errorf("request failed: %w", rootedChain())
		testutils.AssertEqual(t, []Place{placeHandler, placeService, placeStore}, PlacesFrom(err))
	})

	t.Run("leaf contributes nothing", func(t *testing.T) {
		err := leafChain().FurtherUnnoted(placeService)
		testutils.AssertEqual(t, []Place{placeService, placeHandler}, PlacesFrom(err))
	})

	t.Run("chains nested across outer types", func(t *testing.T) {
		err := Lift[error](rootedChain()).Further(placeColumn, NoteOf("outermost"))
		testutils.AssertEqual(t,
			[]Place{placeColumn, placeHandler, placeService, placeStore},
			PlacesFrom(err))
	})

	t.Run("no places", func(t *testing.T) {
		testutils.AssertEqual(t, []Place(nil), PlacesFrom(io.EOF))
		testutils.AssertEqual(t, []Place(nil), PlacesFrom(nil))
	})
}

func TestAsChain(t *testing.T) {
	c := rootedChain()
	err := fmt.Errorf("request failed: %w", c)

	got, ok := AsChain[*codeError](err)
	testutils.AssertEqual(t, true, ok)
	testutils.AssertEqual(t, c, got)

	_, ok = AsChain[error](err)
	testutils.AssertEqual(t, false, ok)

	_, ok = AsChain[*codeError](io.EOF)
	testutils.AssertEqual(t, false, ok)
}

func TestRootOf(t *testing.T) {
	testutils.AssertEqual(t, error(errUnavailable), RootOf(leafChain()))
	c := rootedChain()
	testutils.AssertEqual(t, error(c.Inner()), RootOf(c))
	testutils.AssertEqual(t, io.EOF, RootOf(fmt.Errorf("a: %w", io.EOF)))
	testutils.AssertEqual(t, nil, RootOf(nil))
}
