package decay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// ErrUnknownItem is returned when a serialized element decodes neither
// as the outer failure type nor as text. The decoder's own error is
// wrapped alongside it.
var ErrUnknownItem = NewError("item is neither text nor an outer failure")

// Item is one element of a serialized chain: either the text of a note
// (internal) or an outer failure value (external).
type Item[O error] struct {
	text     string
	outer    O
	external bool
}

var _ interface { // Assert interface implementation.
	fmt.Stringer
	json.Marshaler
	json.Unmarshaler
	msgpack.CustomEncoder
	msgpack.CustomDecoder
} = (*Item[error])(nil)

// TextItem returns an internal item holding text.
func TextItem[O error](text string) Item[O] {
	return Item[O]{text: text}
}

// OuterItem returns an external item holding outer.
func OuterItem[O error](outer O) Item[O] {
	return Item[O]{outer: outer, external: true}
}

// IsExternal reports whether the item holds an outer failure.
func (it Item[O]) IsExternal() bool { return it.external }

// Text returns the note text of an internal item, or "".
func (it Item[O]) Text() string { return it.text }

// Outer returns the failure held by an external item, or false.
func (it Item[O]) Outer() (O, bool) { return it.outer, it.external }

// String returns the note text, or the outer failure's message.
func (it Item[O]) String() string {
	if it.external {
		return it.outer.Error()
	}
	return it.text
}

// MarshalJSON writes the note text as a JSON string, or the outer
// failure by its own rules. An outer json.Marshaler is called directly so
// that its error reaches the caller as is.
func (it Item[O]) MarshalJSON() ([]byte, error) {
	if it.external {
		if isNil(it.outer) {
			return []byte("null"), nil
		}
		if m, ok := any(it.outer).(json.Marshaler); ok {
			return m.MarshalJSON()
		}
		return json.Marshal(it.outer)
	}
	return json.Marshal(it.text)
}

// UnmarshalJSON resolves an element by trial: it is an external item if
// it decodes as O, otherwise an internal one if it decodes as a string.
// null is never written for an item and is rejected.
func (it *Item[O]) UnmarshalJSON(byt []byte) error {
	if bytes.Equal(bytes.TrimSpace(byt), []byte("null")) {
		return fmt.Errorf("%w: null", ErrUnknownItem)
	}

	var outer O
	errOuter := json.Unmarshal(byt, &outer)
	if errOuter == nil && !isNil(outer) {
		*it = OuterItem(outer)
		return nil
	}

	var text string
	if err := json.Unmarshal(byt, &text); err != nil {
		return unknownItem(errOuter)
	}
	*it = TextItem[O](text)
	return nil
}

func (it Item[O]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if it.external {
		return enc.Encode(it.outer)
	}
	return enc.EncodeString(it.text)
}

// DecodeMsgpack resolves an element the same way UnmarshalJSON does.
func (it *Item[O]) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeRaw()
	if err != nil {
		return err
	}
	if len(raw) == 0 || raw[0] == msgpcode.Nil {
		return fmt.Errorf("%w: nil", ErrUnknownItem)
	}

	var outer O
	errOuter := msgpack.Unmarshal(raw, &outer)
	if errOuter == nil && !isNil(outer) {
		*it = OuterItem(outer)
		return nil
	}

	var text string
	if err := msgpack.Unmarshal(raw, &text); err != nil {
		return unknownItem(errOuter)
	}
	*it = TextItem[O](text)
	return nil
}

func unknownItem(cause error) error {
	if cause == nil {
		return ErrUnknownItem
	}
	return fmt.Errorf("%w: %w", ErrUnknownItem, cause)
}

// Report is the receiving side of chain serialization: the ordered items
// of a chain, outermost first. It is deliberately not a Decay. Places,
// unnoted frames and the Rooted/Wrapped distinction are not transmitted,
// so a Report can only rebuild the flat list:
//
//	var report decay.Report[*FetchError]
//	err := json.Unmarshal(body, &report)
//
// A Report is an error in its own right, so a service can return what it
// received. Its message joins the items like Decay's message does, and
// Unwrap exposes the external items to errors.Is and errors.As.
//
// The following formatting verbs are supported:
//
//	%s    the items joined by ": "
//	%v    same as %s
//	%q    same as %s but quoted
//	%+v   a numbered list, one item per line, external items marked
//	%#v   a Golang representation with the type (`decay.Report`)
type Report[O error] []Item[O]

var _ interface { // Assert interface implementation.
	error
	Unwrap() []error
	fmt.Formatter
	msgpack.CustomEncoder
	msgpack.CustomDecoder
} = (*Report[error])(nil)

// ReportOf flattens a chain in process, giving the Report a remote
// receiver would decode from its serialized form.
func ReportOf[O error](d *Decay[O]) Report[O] {
	if d == nil {
		return nil
	}
	return d.Items()
}

func (r Report[O]) Error() string {
	if len(r) == 0 {
		return "empty report"
	}
	var b strings.Builder
	for i, item := range r {
		if i > 0 {
			b.WriteString(": ")
		}
		b.WriteString(item.String())
	}
	return b.String()
}

// Unwrap returns the outer failures held by the report's external items.
func (r Report[O]) Unwrap() []error {
	var errs []error
	for _, item := range r {
		if item.external {
			errs = append(errs, item.outer)
		}
	}
	return errs
}

// Texts returns the note texts of the internal items, in order.
func (r Report[O]) Texts() []string {
	var texts []string
	for _, item := range r {
		if !item.external {
			texts = append(texts, item.text)
		}
	}
	return texts
}

// Outers returns the failures of the external items, in order.
func (r Report[O]) Outers() []O {
	var outers []O
	for _, item := range r {
		if item.external {
			outers = append(outers, item.outer)
		}
	}
	return outers
}

func (r Report[O]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			size := len(r)
			if size < 1 {
				io.WriteString(s, "empty report: []")
				return
			}
			fmt.Fprintf(s, "report of %d items:\n", size)
			for i, item := range r {
				kind := "note"
				if item.external {
					kind = "error"
				}
				fmt.Fprintf(s, "\n* %s %d of %d: %s", kind, i+1, size, item)
			}
			io.WriteString(s, "\n")
		case s.Flag('#'):
			io.WriteString(s, "decay.Report{")
			for i, item := range r {
				if i > 0 {
					io.WriteString(s, ", ")
				}
				fmt.Fprintf(s, "%q", item.String())
			}
			io.WriteString(s, "}")
		default:
			io.WriteString(s, r.Error())
		}
	case 's':
		io.WriteString(s, r.Error())
	case 'q':
		fmt.Fprintf(s, "%q", r.Error())
	default:
		// empty
	}
}

// EncodeMsgpack writes the items as a msgpack array.
func (r Report[O]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(len(r)); err != nil {
		return err
	}
	for _, item := range r {
		if err := item.EncodeMsgpack(enc); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads a msgpack array of items. A msgpack nil decodes
// to a nil Report.
func (r *Report[O]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n < 0 {
		*r = nil
		return nil
	}
	items := make(Report[O], n)
	for i := range items {
		if err := items[i].DecodeMsgpack(dec); err != nil {
			return err
		}
	}
	*r = items
	return nil
}
