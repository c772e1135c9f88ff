package decay

import "reflect"

// isNil reports whether err is nil, including a typed nil pointer (or
// other nilable value) stored in the interface. A Leaf never holds one.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	switch reflect.TypeOf(err).Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return reflect.ValueOf(err).IsNil()
	default:
		return false
	}
}
