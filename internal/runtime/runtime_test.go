package runtime

import (
	"runtime"
	"testing"

	"github.com/secureworks/decay/internal/testutils"
)

// Callers to build up a call stack in tests.

type callerStruct struct{}

//go:noinline
func (c callerStruct) PtrFrameCaller(skip int) runtime.Frame {
	return FrameCaller(skip)
}

//go:noinline
func FrameCaller(skip int) runtime.Frame {
	return GetFrame(skip)
}

//go:noinline
func locationCaller(skip int) (string, int) {
	return Location(skip)
}

//go:noinline
func thisLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestGetFrame(t *testing.T) {
	var cs callerStruct
	cases := []struct {
		name  string
		frame runtime.Frame
		fn    string
		file  string
	}{
		{
			name:  "skip:0",
			frame: cs.PtrFrameCaller(0),
			fn:    `.+\/runtime\.GetFrame`,
			file:  `.+\/runtime\.go`,
		},
		{
			name:  "skip:1",
			frame: cs.PtrFrameCaller(1),
			fn:    `.+\/runtime\.FrameCaller`,
			file:  `.+\/runtime_test\.go`,
		},
		{
			name:  "skip:2",
			frame: cs.PtrFrameCaller(2),
			fn:    `.+\/runtime\.callerStruct\.PtrFrameCaller`,
			file:  `.+\/runtime_test\.go`,
		},
		{
			name:  "skip:3",
			frame: cs.PtrFrameCaller(3),
			fn:    `.+\/runtime\.TestGetFrame`,
			file:  `.+\/runtime_test\.go`,
		},
		{
			name:  "skip:4",
			frame: cs.PtrFrameCaller(4),
			fn:    `testing\.tRunner`,
			file:  `.+\/testing\/testing\.go`,
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			testutils.AssertMatch(t, tt.fn, tt.frame.Function)
			testutils.AssertMatch(t, tt.file, tt.frame.File)
		})
	}
}

func TestLocation(t *testing.T) {
	t.Run("direct caller", func(t *testing.T) {
		file, line := Location(0)
		want := thisLine() - 1
		testutils.AssertMatch(t, `.+\/runtime_test\.go$`, file)
		testutils.AssertEqual(t, want, line)
	})

	t.Run("one level up", func(t *testing.T) {
		file, line := locationCaller(1)
		want := thisLine() - 1
		testutils.AssertMatch(t, `.+\/runtime_test\.go$`, file)
		testutils.AssertEqual(t, want, line)
	})

	t.Run("past the top of the stack", func(t *testing.T) {
		file, line := Location(64)
		testutils.AssertEqual(t, "unknown", file)
		testutils.AssertEqual(t, 0, line)
	})
}

func TestTrimFile(t *testing.T) {
	cases := []struct {
		file string
		n    int
		want string
	}{
		{file: "", n: 2, want: ""},
		{file: "place.go", n: 2, want: "place.go"},
		{file: "/src/decay/place.go", n: 1, want: "place.go"},
		{file: "/src/decay/place.go", n: 2, want: "decay/place.go"},
		{file: "/src/decay/place.go", n: 0, want: "/src/decay/place.go"},
		{file: "decay/place.go", n: 3, want: "decay/place.go"},
	}
	for _, tt := range cases {
		t.Run(tt.file, func(t *testing.T) {
			testutils.AssertEqual(t, tt.want, TrimFile(tt.file, tt.n))
		})
	}
}
