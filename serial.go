package decay

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Chain serialization.
//
// A chain is flattened for other processes: frames are visited
// outermost first and each contributes one element, a Leaf its outer
// failure (encoded by its own rules) and any other frame its note text.
// Absent notes contribute nothing, and places are never sent:
//
//	["fetching profile","reading cache",{"code":503,"msg":"unavailable"}]
//
// Decoding this shape gives a Report, not a Decay: the flattening is
// lossy by contract and the remote side only needs the ordered items.

var _ interface { // Assert interface implementation.
	json.Marshaler
	msgpack.CustomEncoder
} = (*Decay[error])(nil)

// Items flattens the chain into the ordered items it serializes to.
func (d *Decay[O]) Items() []Item[O] {
	var items []Item[O]
	for frame := range d.Frames() {
		if frame.kind == Leaf {
			items = append(items, OuterItem(frame.outer))
			continue
		}
		if text, ok := frame.note.Text(); ok {
			items = append(items, TextItem[O](text))
		}
	}
	return items
}

// MarshalJSON encodes the chain as a JSON array of its items. An error
// from marshaling the outer failure is returned as is.
func (d *Decay[O]) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	buf := new(bytes.Buffer)
	buf.WriteByte('[')
	for i, item := range d.Items() {
		byt, err := item.MarshalJSON()
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(byt)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// EncodeMsgpack encodes the chain as a msgpack array of its items, the
// same sequence MarshalJSON writes.
func (d *Decay[O]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if d == nil {
		return enc.EncodeNil()
	}
	return Report[O](d.Items()).EncodeMsgpack(enc)
}
