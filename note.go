package decay

// Note is an optional, non-empty piece of text attached to a frame of a
// chain. Every way of building a Note funnels through the same rule:
// empty text means "no note". Notes are immutable values, compared with
// ==.
type Note struct {
	text string
}

// NoNote is the absent Note.
var NoNote = Note{}

// NoteOf returns a Note holding text, or NoNote when text is empty.
func NoteOf(text string) Note {
	return Note{text: text}
}

// NoteFrom returns a Note from optional text: nil and the empty string
// both give NoNote.
func NoteFrom(text *string) Note {
	if text == nil {
		return NoNote
	}
	return NoteOf(*text)
}

// IsNone reports whether the note is absent.
func (n Note) IsNone() bool { return n.text == "" }

// Text returns the note's text and whether the note is present.
func (n Note) Text() (string, bool) { return n.text, n.text != "" }

// Equal compares the note against raw text; the empty string matches
// an absent note.
func (n Note) Equal(text string) bool { return n.text == text }

// String returns the text, or "``" for an absent note.
func (n Note) String() string {
	if n.text == "" {
		return "``"
	}
	return n.text
}

func (n Note) GoString() string {
	if n.text == "" {
		return "decay.NoNote"
	}
	return `decay.Note("` + escaper.Replace(n.text) + `")`
}
