package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		name   string
		header string
		size   int64
		start  int64
		end    int64
		ok     bool
	}{
		{"no header", "", 1000, 0, 0, false},
		{"full range", "bytes=0-999", 1000, 0, 999, true},
		{"middle", "bytes=500-999", 1000, 500, 999, true},
		{"open end", "bytes=500-", 1000, 500, 999, true},
		{"end clamped", "bytes=500-2000", 1000, 500, 999, true},
		{"suffix form parses start as zero", "bytes=-500", 1000, 0, 500, true},
		{"bare dash", "bytes=-", 1000, 0, 0, false},
		{"inverted", "bytes=700-300", 1000, 0, 0, false},
		{"start at size", "bytes=1000-", 1000, 0, 0, false},
		{"start beyond size", "bytes=5000-6000", 1000, 0, 0, false},
		{"garbage", "bytes=abc-def", 1000, 0, 0, false},
		{"multi range", "bytes=0-1,5-9", 1000, 0, 0, false},
		{"wrong unit", "items=0-10", 1000, 0, 0, false},
		{"empty object", "bytes=0-10", 0, 0, 0, false},
		{"single byte", "bytes=0-0", 1000, 0, 0, true},
		{"last byte", "bytes=999-999", 1000, 999, 999, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, ok := parseRange(tc.header, tc.size)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.start, start)
				require.Equal(t, tc.end, end)
			}
		})
	}
}
