package decay

import (
	"fmt"
	"testing"

	"github.com/secureworks/decay/internal/testutils"
)

func TestNoteAbsence(t *testing.T) {
	empty := ""
	notes := map[string]Note{
		"NoNote":        NoNote,
		"zero value":    {},
		"empty string":  NoteOf(""),
		"nil pointer":   NoteFrom(nil),
		"empty pointer": NoteFrom(&empty),
		"empty Notef":   Notef(""),
	}
	for name, n := range notes {
		t.Run(name, func(t *testing.T) {
			testutils.AssertEqual(t, NoNote, n)
			testutils.AssertEqual(t, true, n.IsNone())
			text, ok := n.Text()
			testutils.AssertEqual(t, "", text)
			testutils.AssertEqual(t, false, ok)
			testutils.AssertEqual(t, true, n.Equal(""))
		})
	}
}

func TestNotePresent(t *testing.T) {
	text := "root cause"
	n := NoteFrom(&text)

	testutils.AssertEqual(t, NoteOf("root cause"), n)
	testutils.AssertEqual(t, false, n.IsNone())
	testutils.AssertEqual(t, true, n.Equal("root cause"))
	testutils.AssertEqual(t, false, n.Equal("root"))

	got, ok := n.Text()
	testutils.AssertEqual(t, "root cause", got)
	testutils.AssertEqual(t, true, ok)
}

func TestNoteFormat(t *testing.T) {
	testutils.AssertEqual(t, "root cause", fmt.Sprintf("%v", NoteOf("root cause")))
	testutils.AssertEqual(t, "``", fmt.Sprintf("%s", NoNote))
	testutils.AssertEqual(t, `decay.Note("say \"hi\"")`, fmt.Sprintf("%#v", NoteOf(`say "hi"`)))
	testutils.AssertEqual(t, "decay.NoNote", fmt.Sprintf("%#v", NoNote))
}
