//go:build go1.23

package constraints

const Go123RangeOverFunc = uint8(0)
