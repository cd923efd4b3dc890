package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	cases := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"all", FilterAll, true},
		{" Open ", FilterOpen, true},
		{"DONE", FilterDone, true},
		{"pending", FilterAll, false},
		{"", FilterAll, false},
	}
	for _, tc := range cases {
		got, ok := ParseFilter(tc.in)
		require.Equal(t, tc.ok, ok, "ParseFilter(%q)", tc.in)
		require.Equal(t, tc.want, got, "ParseFilter(%q)", tc.in)
	}
}

func TestFilterMatch(t *testing.T) {
	open := Item{ID: "a", Text: "open"}
	done := Item{ID: "b", Text: "done", Done: true}

	require.True(t, FilterAll.Match(open))
	require.True(t, FilterAll.Match(done))
	require.True(t, FilterOpen.Match(open))
	require.False(t, FilterOpen.Match(done))
	require.False(t, FilterDone.Match(open))
	require.True(t, FilterDone.Match(done))
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	var seen []Filter
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	require.Equal(t, []Filter{FilterOpen, FilterDone, FilterAll}, seen)
}
