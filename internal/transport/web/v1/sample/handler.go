package sample

import (
	"errors"
	"log"
	"net/http"

	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/resolver"
	"github.com/matlycreative/sample-gate/internal/transport/web/logx"
	"github.com/matlycreative/sample-gate/internal/transport/web/mw"
	v1 "github.com/matlycreative/sample-gate/internal/transport/web/v1"
)

// Коды бизнес-ошибок в теле ответа. HTTP-статус при них всё равно 200:
// клиент страницы всегда получает разбираемый JSON, а не голую ошибку.
const (
	codeMissingID       = "MISSING_ID"
	codePointerNotFound = "POINTER_NOT_FOUND"
	codeEmptyKey        = "EMPTY_KEY"
	codeObjectNotFound  = "OBJECT_NOT_FOUND"
	codeServer          = "SERVER"
)

type Handler struct {
	Log      *log.Logger
	Resolver *resolver.Resolver
}

// Response — контракт resolve-эндпоинта. signedUrl/streamUrl
// взаимоисключающие (зависят от режима выдачи).
type Response struct {
	SignedURL *string `json:"signedUrl,omitempty"`
	StreamURL *string `json:"streamUrl,omitempty"`
	Company   *string `json:"company"`
	Link      *string `json:"link"`
	FoundKey  string  `json:"foundKey,omitempty"`
	Error     string  `json:"error,omitempty"`
	WantedKey string  `json:"wantedKey,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Resolve godoc
// @Summary     Resolve sample by recipient id
// @Description Находит видео-сэмпл по идентификатору получателя и возвращает ссылку на просмотр.
// @Tags        sample
// @Produce     json
// @Param       id  query  string  true  "Идентификатор (например: jane_acme_com)"
// @Success     200 {object} sample.Response
// @Router      /api/sample [get]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	const op = "sample.resolve"
	reqID := mw.RequestIDFromCtx(r.Context())

	// Указатели читаются заново на каждый запрос, ответы не кэшируются.
	w.Header().Set("Cache-Control", "no-store")

	id := r.URL.Query().Get("id")
	res, err := h.Resolver.Resolve(r.Context(), id, origin(r))

	resp := Response{
		Company:   optStr(res.Company),
		Link:      optStr(res.Link),
		FoundKey:  res.FoundKey,
		SignedURL: optStr(res.SignedURL),
		StreamURL: optStr(res.StreamURL),
	}

	switch {
	case err == nil:
		logx.Info(h.Log, reqID, op, "ok", "id", id, "found_key", res.FoundKey)
	case errors.Is(err, domain.ErrMissingID):
		logx.Info(h.Log, reqID, op, "missing id")
		resp.Error = codeMissingID
	case errors.Is(err, domain.ErrPointerNotFound):
		logx.Info(h.Log, reqID, op, "pointer not found", "id", id)
		resp.Error = codePointerNotFound
	case errors.Is(err, domain.ErrEmptyKey):
		logx.Info(h.Log, reqID, op, "empty key in pointer", "id", id)
		resp.Error = codeEmptyKey
	case errors.Is(err, domain.ErrSampleNotFound):
		logx.Info(h.Log, reqID, op, "object not found", "id", id, "wanted_key", res.WantedKey)
		resp.Error = codeObjectNotFound
		resp.WantedKey = res.WantedKey
	default:
		// Неожиданные ошибки бэкенда наружу не раскрываем.
		logx.Error(h.Log, reqID, op, "resolve failed", err, "id", id)
		resp.Error = codeServer
		resp.Message = "temporary backend error"
	}

	v1.WriteJSON(w, http.StatusOK, resp)
}

// origin восстанавливает схему+хост запроса для фолбэка канонической ссылки.
func origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
