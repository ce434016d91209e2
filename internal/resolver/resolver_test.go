package resolver

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/infra/storage/memory"
)

func newResolver(st domain.ObjectStorage, mode, base string) *Resolver {
	return &Resolver{
		Log:        log.New(io.Discard, "", 0),
		Storage:    st,
		Base:       base,
		Mode:       mode,
		PresignTTL: 24 * time.Hour,
	}
}

func TestResolveMissingID(t *testing.T) {
	rs := newResolver(memory.New(), config.DeliveryStream, "")

	_, err := rs.Resolve(context.Background(), "", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrMissingID)
}

func TestResolvePointerNotFound(t *testing.T) {
	rs := newResolver(memory.New(), config.DeliveryStream, "https://matly.example")

	res, err := rs.Resolve(context.Background(), "nobody_nowhere_com", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrPointerNotFound)
	// ссылка обязана быть и при неудаче
	require.Equal(t, "https://matly.example/p/?id=nobody_nowhere_com", res.Link)
	require.Empty(t, res.Company)
}

func TestResolveEmptyKey(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"","company":"Acme Homes"}`), "application/json")
	rs := newResolver(st, config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrEmptyKey)
	require.Equal(t, "Acme Homes", res.Company)
	require.NotEmpty(t, res.Link)
}

func TestResolveBadPointerJSON(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte("not json"), "application/json")
	rs := newResolver(st, config.DeliveryStream, "")

	_, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrEmptyKey)
}

func TestResolveExactKey(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4","company":"Acme Homes"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4", make([]byte, 1000), "video/mp4")
	rs := newResolver(st, config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	require.Equal(t, "videos/jane_acme_com__tour.mp4", res.FoundKey)
	require.Equal(t, "Acme Homes", res.Company)
	require.Equal(t, "/stream?key=videos%2Fjane_acme_com__tour.mp4", res.StreamURL)
	require.Empty(t, res.SignedURL)
}

func TestResolveNestedHeuristic(t *testing.T) {
	// загрузчик иногда дублирует имя файла как подкаталог
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4/jane_acme_com__tour.mp4", []byte("x"), "video/mp4")
	rs := newResolver(st, config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	require.Equal(t, "videos/jane_acme_com__tour.mp4/jane_acme_com__tour.mp4", res.FoundKey)
}

func TestResolvePrefixListing(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4/final_cut.mp4", []byte("x"), "video/mp4")
	rs := newResolver(st, config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	require.Equal(t, "videos/jane_acme_com__tour.mp4/final_cut.mp4", res.FoundKey)
}

func TestResolveObjectNotFound(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4"}`), "application/json")
	rs := newResolver(st, config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrSampleNotFound)
	require.Equal(t, "videos/jane_acme_com__tour.mp4", res.WantedKey)
	require.NotEmpty(t, res.Link)
}

func TestResolvePresignMode(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4", []byte("x"), "video/mp4")
	rs := newResolver(st, config.DeliveryPresign, "")

	res, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	require.NotEmpty(t, res.SignedURL)
	require.Empty(t, res.StreamURL)
}

func TestResolveLinkOriginFallback(t *testing.T) {
	rs := newResolver(memory.New(), config.DeliveryStream, "")

	res, err := rs.Resolve(context.Background(), "a_b_c", "http://gate.local")
	require.ErrorIs(t, err, domain.ErrPointerNotFound)
	require.Equal(t, "http://gate.local/p/?id=a_b_c", res.Link)
}

func TestResolveIdempotent(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4","company":"Acme Homes"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4", make([]byte, 10), "video/mp4")
	rs := newResolver(st, config.DeliveryStream, "")

	first, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	second, err := rs.Resolve(context.Background(), "jane_acme_com", "http://gate.local")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
