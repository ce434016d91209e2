package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDropName(t *testing.T) {
	email, rest, ok := ParseDropName("jane@acme.com__tour.mp4")
	require.True(t, ok)
	require.Equal(t, "jane@acme.com", email)
	require.Equal(t, "tour.mp4", rest)

	// rest может сам содержать "__" — режем по первому
	email, rest, ok = ParseDropName("jane@acme.com__final__cut.mp4")
	require.True(t, ok)
	require.Equal(t, "jane@acme.com", email)
	require.Equal(t, "final__cut.mp4", rest)

	_, _, ok = ParseDropName("no-separator.mp4")
	require.False(t, ok)
	_, _, ok = ParseDropName("__tour.mp4")
	require.False(t, ok)
	_, _, ok = ParseDropName("jane@acme.com__")
	require.False(t, ok)
}

func TestDeriveCompany(t *testing.T) {
	require.Equal(t, "Acme", DeriveCompany("jane@acme.com"))
	require.Equal(t, "Acme homes", DeriveCompany("jane@acme-homes.com"))
	require.Equal(t, "Big realty", DeriveCompany("x@big_realty.co.uk"))
	require.Equal(t, "", DeriveCompany("not-an-email"))
}
