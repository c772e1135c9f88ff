// Package remote provides an outer failure type for reports whose
// sender's failure type is unknown to the receiver.
package remote

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// messageKeys are the fields, in order of preference, read as the
// human-readable message of an Error.
var messageKeys = []string{"message", "msg", "error", "err"}

// Error is a failure of unknown shape: whatever object (JSON) or map
// (msgpack) the sender encoded. It decodes only from objects, so a
// report's note strings are never mistaken for an Error.
type Error struct {
	Fields map[string]interface{}
}

var _ interface { // Assert interface implementation.
	error
	json.Marshaler
	json.Unmarshaler
	msgpack.CustomEncoder
	msgpack.CustomDecoder
} = (*Error)(nil)

func (e *Error) Error() string {
	for _, key := range messageKeys {
		if msg, ok := e.Fields[key].(string); ok && msg != "" {
			return msg
		}
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, e.Fields[k])
	}
	return "{" + strings.Join(pairs, " ") + "}"
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields)
}

func (e *Error) UnmarshalJSON(byt []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(byt, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("remote error: expected an object, got %s", byt)
	}
	e.Fields = fields
	return nil
}

func (e *Error) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(e.Fields)
}

func (e *Error) DecodeMsgpack(dec *msgpack.Decoder) error {
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("remote error: expected a map, got nil")
	}
	e.Fields = fields
	return nil
}
