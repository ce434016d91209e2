package janitor

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/infra/storage/memory"
)

var frozenNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newSweeper(st domain.ObjectStorage, dry bool) *Sweeper {
	return &Sweeper{
		Log:     log.New(io.Discard, "", 0),
		Storage: st,
		DryRun:  dry,
		Now:     func() time.Time { return frozenNow },
	}
}

func seed(st *memory.Storage, id, due string) {
	st.PutBytes(domain.PointerKey(id), []byte(`{"key":"videos/`+id+`__tour.mp4"}`), "application/json")
	st.PutBytes("videos/"+id+"__tour.mp4", []byte("video"), "video/mp4")
	st.PutBytes("videos/"+id+"__extra.mp4", []byte("video"), "video/mp4")
	st.PutBytes(domain.MarkerPrefix+"/"+id+"__20260801.json",
		[]byte(`{"id":"`+id+`","due":"`+due+`"}`), "application/json")
}

func TestSweepDeletesDue(t *testing.T) {
	st := memory.New()
	seed(st, "jane_acme_com", "2026-08-01T00:00:00Z")

	n, err := newSweeper(st, false).Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Empty(t, st.Keys())
}

func TestSweepKeepsNotDue(t *testing.T) {
	st := memory.New()
	seed(st, "jane_acme_com", "2026-12-01T00:00:00Z")

	n, err := newSweeper(st, false).Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, st.Keys(), 4)
}

func TestSweepAcceptsNaiveTimestamp(t *testing.T) {
	// исторические маркеры писались без зоны — трактуем как UTC
	st := memory.New()
	seed(st, "jane_acme_com", "2026-08-01T00:00:00")

	n, err := newSweeper(st, false).Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSweepSkipsBadMarker(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.MarkerPrefix+"/broken.json", []byte("not json"), "application/json")
	st.PutBytes(domain.MarkerPrefix+"/noid.json", []byte(`{"due":"2026-08-01T00:00:00Z"}`), "application/json")

	n, err := newSweeper(st, false).Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
	require.Len(t, st.Keys(), 2) // битые маркеры не трогаем
}

func TestSweepDryRun(t *testing.T) {
	st := memory.New()
	seed(st, "jane_acme_com", "2026-08-01T00:00:00Z")

	n, err := newSweeper(st, true).Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Len(t, st.Keys(), 4) // ничего не удалено
}

func TestSweepTouchesOnlyItsID(t *testing.T) {
	st := memory.New()
	seed(st, "jane_acme_com", "2026-08-01T00:00:00Z")
	st.PutBytes(domain.PointerKey("bob_other_com"), []byte(`{"key":"videos/bob_other_com__a.mp4"}`), "application/json")
	st.PutBytes("videos/bob_other_com__a.mp4", []byte("video"), "video/mp4")

	_, err := newSweeper(st, false).Sweep(context.Background())
	require.NoError(t, err)

	keys := st.Keys()
	require.Len(t, keys, 2)
	require.Contains(t, keys, domain.PointerKey("bob_other_com"))
	require.Contains(t, keys, "videos/bob_other_com__a.mp4")
}
