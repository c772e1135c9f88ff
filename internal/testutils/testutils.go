// Package testutils holds the semantic assertions shared by this
// module's tests. They are thin layers over testify that keep the
// "pads" style of labelling a failing case.
package testutils

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertMatch is a semantic test assertion for string regex matching.
// If the pattern is empty we match only with an empty string for
// simplicity.
func AssertMatch(t *testing.T, pattern, value string, pads ...string) bool {
	t.Helper()

	if pattern == "" {
		return AssertEqual(t, pattern, value, pads...)
	}
	return assert.Regexp(t, regexp.MustCompile(pattern), value, label(pads, "does not match"))
}

// AssertEqual is a semantic test assertion for object equality.
func AssertEqual(t *testing.T, expected, actual interface{}, pads ...string) bool {
	t.Helper()
	return assert.Equal(t, expected, actual, label(pads, "not equal"))
}

// AssertErrorMessage is a semantic test assertion for error "message
// context" equality.
func AssertErrorMessage(t *testing.T, expected string, err error, pads ...string) bool {
	t.Helper()
	return assert.EqualError(t, err, expected, label(pads, "message not equal"))
}

// AssertLinesMatch formats arg with format, breaks the result up into
// lines and matches each with a regex per line.
func AssertLinesMatch(t *testing.T, arg interface{}, format string, expected interface{}) bool {
	t.Helper()

	got := fmt.Sprintf(format, arg)
	gotLines := strings.Split(got, "\n")

	var wantLines []string
	switch want := expected.(type) {
	case string:
		wantLines = strings.Split(want, "\n")
	case []string:
		wantLines = want
	default:
		t.Fatalf("bad expected value passed: only handles string and []string: %#v", expected)
	}

	if !assert.Len(t, gotLines, len(wantLines), "line count:\n got: %q\nwant: %q", got, expected) {
		return false
	}

	ok := true
	for i, w := range wantLines {
		ok = AssertMatch(t, w, gotLines[i], fmt.Sprintf("line %0d", i+1)) && ok
	}
	return ok
}

func label(pads []string, suffix string) string {
	return strings.Join(append(pads, suffix), ": ")
}
