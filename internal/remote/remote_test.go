package remote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]interface{}
		want   string
	}{
		{name: "message", fields: map[string]interface{}{"message": "a", "msg": "b"}, want: "a"},
		{name: "msg", fields: map[string]interface{}{"msg": "b", "error": "c"}, want: "b"},
		{name: "err", fields: map[string]interface{}{"err": "d", "code": 1}, want: "d"},
		{name: "empty message skipped", fields: map[string]interface{}{"message": "", "error": "c"}, want: "c"},
		{name: "non-string message", fields: map[string]interface{}{"message": 3}, want: "{message=3}"},
		{name: "sorted fields", fields: map[string]interface{}{"level": 1, "note": "Any text"}, want: "{level=1 note=Any text}"},
		{name: "empty", fields: map[string]interface{}{}, want: "{}"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Error{Fields: tt.fields}).Error())
		})
	}
}

func TestErrorJSON(t *testing.T) {
	var e Error
	require.NoError(t, json.Unmarshal([]byte(`{"level":1,"note":"Any text"}`), &e))
	assert.Equal(t, map[string]interface{}{"level": float64(1), "note": "Any text"}, e.Fields)

	byt, err := json.Marshal(&e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":1,"note":"Any text"}`, string(byt))

	for _, input := range []string{`"text"`, `null`, `[1]`, `3`} {
		var e Error
		assert.Error(t, json.Unmarshal([]byte(input), &e), input)
	}
}

func TestErrorMsgpack(t *testing.T) {
	in := &Error{Fields: map[string]interface{}{"msg": "unavailable"}}
	byt, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out Error
	require.NoError(t, msgpack.Unmarshal(byt, &out))
	assert.Equal(t, "unavailable", out.Error())

	for _, input := range []interface{}{"text", 3, []int{1}} {
		byt, err := msgpack.Marshal(input)
		require.NoError(t, err)
		var e Error
		assert.Error(t, msgpack.Unmarshal(byt, &e), input)
	}
}
