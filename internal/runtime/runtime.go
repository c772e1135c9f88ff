// Package runtime captures the source position of the code that attaches
// an annotation to a decay chain.
package runtime

import (
	"runtime"
	"strings"
)

// GetFrame returns the frame skip levels up the stack, counting GetFrame
// itself as level 0. An empty runtime.Frame is returned when the stack
// is not that deep.
//
//go:noinline
func GetFrame(skip int) runtime.Frame {
	var pcs [3]uintptr
	frames, _ := callers(skip, pcs[:])
	fr, ok := frames.Next()
	if !ok {
		return runtime.Frame{}
	}
	return fr
}

// Location returns the file and line of the frame skip levels above the
// caller of Location: Location(0) describes the function that called it.
// Unknown positions are reported as ("unknown", 0).
//
//go:noinline
func Location(skip int) (file string, line int) {
	fr := GetFrame(skip + 2)
	if fr.File == "" {
		return "unknown", 0
	}
	return fr.File, fr.Line
}

// TrimFile shortens an absolute file path to its last n elements (the
// package directory and file name for n == 2). Paths with fewer elements
// are returned unchanged.
func TrimFile(file string, n int) string {
	if n <= 0 {
		return file
	}
	idx := len(file)
	for i := 0; i < n; i++ {
		idx = strings.LastIndexByte(file[:idx], '/')
		if idx < 0 {
			return file
		}
	}
	return file[idx+1:]
}

//go:noinline
func callers(skip int, pcs []uintptr) (frames *runtime.Frames, n int) {
	n = runtime.Callers(skip+1, pcs)
	frames = runtime.CallersFrames(pcs[:n])
	if _, ok := frames.Next(); !ok {
		return &runtime.Frames{}, 0
	}
	return
}
