package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwiftFunctionTimes(t *testing.T) {
	t.Parallel()

	text := "CompileSwift normal arm64\n" +
		"0.12ms\t/App/A.swift:10:6\tinstance method foo()\n" +
		"4.50ms\t/App/A.swift:22:6\tgetter x\n" +
		"0.08ms\t<invalid loc>:0:0\tclosure\n" +
		"not a timing line\n"

	times := parseSwiftFunctionTimes(text)
	require.Len(t, times, 2)

	assert.Equal(t, "file:///App/A.swift", times[0].File)
	assert.Equal(t, 0.12, times[0].DurationMS)
	assert.Equal(t, 10, times[0].StartingLine)
	assert.Equal(t, 6, times[0].StartingColumn)
	assert.Equal(t, "instance method foo()", times[0].Signature)
	assert.Equal(t, 4.5, times[1].DurationMS)
}

func TestParseSwiftFunctionTimes_NoInstrumentation(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseSwiftFunctionTimes("CompileSwift normal arm64 A.swift", ""))
}

func TestRedactUserPaths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"/Users/bob/App/A.swift", "/Users/<redacted>/App/A.swift"},
		{"file:///Users/alice.smith/x", "file:///Users/<redacted>/x"},
		{"Ld /Users/bob/out normal arm64", "Ld /Users/<redacted>/out normal arm64"},
		{"/tmp/other/path", "/tmp/other/path"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RedactUserPaths(tc.in))
	}
}
