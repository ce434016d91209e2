package sample

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/infra/storage/memory"
	"github.com/matlycreative/sample-gate/internal/resolver"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/stream"
)

func newHandler(st domain.ObjectStorage, mode, base string) *Handler {
	discard := log.New(io.Discard, "", 0)
	return &Handler{
		Log: discard,
		Resolver: &resolver.Resolver{
			Log:        discard,
			Storage:    st,
			Base:       base,
			Mode:       mode,
			PresignTTL: 24 * time.Hour,
		},
	}
}

func resolve(t *testing.T, h *Handler, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.Resolve(w, r)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestResolveMissingID(t *testing.T) {
	h := newHandler(memory.New(), config.DeliveryStream, "")

	w, resp := resolve(t, h, "/api/sample")

	// бизнес-ошибки тоже едут с 200 и структурным телом
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	require.Equal(t, "MISSING_ID", resp.Error)
	require.Nil(t, resp.Link)
}

func TestResolvePointerNotFound(t *testing.T) {
	h := newHandler(memory.New(), config.DeliveryStream, "")

	w, resp := resolve(t, h, "/api/sample?id=nobody_nowhere_com")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "POINTER_NOT_FOUND", resp.Error)
	require.Nil(t, resp.Company)
	// ссылка считается всегда; базы в конфиге нет — origin запроса
	require.NotNil(t, resp.Link)
	require.Equal(t, "http://example.com/p/?id=nobody_nowhere_com", *resp.Link)
}

func TestResolveEmptyKey(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"","company":"Acme Homes"}`), "application/json")
	h := newHandler(st, config.DeliveryStream, "")

	_, resp := resolve(t, h, "/api/sample?id=jane_acme_com")

	require.Equal(t, "EMPTY_KEY", resp.Error)
	require.NotNil(t, resp.Company)
	require.Equal(t, "Acme Homes", *resp.Company)
}

func TestResolveObjectNotFound(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4"}`), "application/json")
	h := newHandler(st, config.DeliveryStream, "")

	_, resp := resolve(t, h, "/api/sample?id=jane_acme_com")

	require.Equal(t, "OBJECT_NOT_FOUND", resp.Error)
	require.Equal(t, "videos/jane_acme_com__tour.mp4", resp.WantedKey)
	require.NotNil(t, resp.Link)
}

func TestResolveServerError(t *testing.T) {
	h := newHandler(errStorage{}, config.DeliveryStream, "")

	w, resp := resolve(t, h, "/api/sample?id=jane_acme_com")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "SERVER", resp.Error)
	require.NotEmpty(t, resp.Message)
	// внутренности ошибки наружу не уходят
	require.NotContains(t, resp.Message, "boom")
}

// Сквозной сценарий: резолв и последующий range-запрос к /stream.
func TestResolveThenStreamScenario(t *testing.T) {
	st := memory.New()
	st.PutBytes(domain.PointerKey("jane_acme_com"), []byte(`{"key":"videos/jane_acme_com__tour.mp4","company":"Acme Homes"}`), "application/json")
	st.PutBytes("videos/jane_acme_com__tour.mp4", make([]byte, 1000), "video/mp4")

	h := newHandler(st, config.DeliveryStream, "https://matly.example")
	_, resp := resolve(t, h, "/api/sample?id=jane_acme_com")

	require.Empty(t, resp.Error)
	require.Equal(t, "videos/jane_acme_com__tour.mp4", resp.FoundKey)
	require.NotNil(t, resp.Company)
	require.Equal(t, "Acme Homes", *resp.Company)
	require.NotNil(t, resp.StreamURL)

	// клиент идёт по streamUrl с перемоткой
	sh := &stream.Handler{Log: log.New(io.Discard, "", 0), Storage: st}
	r := httptest.NewRequest(http.MethodGet, *resp.StreamURL, nil)
	r.Header.Set("Range", "bytes=500-999")
	w := httptest.NewRecorder()
	sh.Serve(w, r)

	require.Equal(t, http.StatusPartialContent, w.Code)
	require.Equal(t, "bytes 500-999/1000", w.Header().Get("Content-Range"))
	require.Len(t, w.Body.Bytes(), 500)
}

// errStorage имитирует недоступный бэкенд.
type errStorage struct{}

var errBoom = errors.New("boom: connection refused")

func (errStorage) Stat(context.Context, string) (domain.ObjectInfo, error) {
	return domain.ObjectInfo{}, errBoom
}
func (errStorage) Open(context.Context, string, int64, int64) (io.ReadCloser, error) {
	return nil, errBoom
}
func (errStorage) Exists(context.Context, string) (bool, error)        { return false, errBoom }
func (errStorage) List(context.Context, string, int) ([]string, error) { return nil, errBoom }
func (errStorage) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", errBoom
}
func (errStorage) Put(context.Context, string, io.Reader, int64, string) error { return errBoom }
func (errStorage) Remove(context.Context, string) error                        { return errBoom }
func (errStorage) Ping(context.Context) error                                  { return errBoom }
