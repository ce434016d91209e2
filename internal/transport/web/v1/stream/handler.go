// Package stream — отдача объекта хранилища по ключу с поддержкой
// HTTP range-запросов. Тело всегда стримится из бэкенда, объект целиком
// в память не читается.
package stream

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/transport/web/logx"
	"github.com/matlycreative/sample-gate/internal/transport/web/mw"
	v1 "github.com/matlycreative/sample-gate/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	Storage domain.ObjectStorage
}

// Serve godoc
// @Summary     Stream object by storage key
// @Description Отдаёт объект (видео) по ключу, понимает Range для перемотки/докачки.
// @Tags        stream
// @Produce     octet-stream
// @Param       key      query   string  true   "Ключ объекта"
// @Param       download query   int     false  "1 — отдать как attachment"
// @Param       Range    header  string  false  "bytes=<start>-<end>"
// @Success     200 {file} []byte
// @Success     206 {file} []byte
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Router      /stream [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	const op = "stream.serve"
	reqID := mw.RequestIDFromCtx(r.Context())

	key := r.URL.Query().Get("key")
	if key == "" {
		logx.Info(h.Log, reqID, op, "missing key")
		v1.WriteError(w, http.StatusBadRequest, "missing key")
		return
	}

	info, err := h.Storage.Stat(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logx.Info(h.Log, reqID, op, "object not found", "key", key)
			v1.WriteError(w, http.StatusNotFound, "not found")
			return
		}
		logx.Error(h.Log, reqID, op, "stat failed", err, "key", key)
		v1.WriteError(w, http.StatusInternalServerError, "storage error")
		return
	}

	w.Header().Set("Content-Type", contentType(info, key))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Cache-Control", "no-store")
	if info.ETag != "" {
		w.Header().Set("ETag", `"`+info.ETag+`"`)
	}
	if !info.LastModified.IsZero() {
		w.Header().Set("Last-Modified", v1.HTTPTime(info.LastModified))
	}
	if r.URL.Query().Get("download") == "1" {
		// кавычки из имени вырезаем, чтобы нельзя было сломать заголовок
		name := strings.ReplaceAll(path.Base(key), `"`, "")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}

	start, end, partial := parseRange(r.Header.Get("Range"), info.Size)
	if !partial {
		start, end = -1, 0 // весь объект
	}

	rc, err := h.Storage.Open(r.Context(), key, start, end)
	if err != nil {
		logx.Error(h.Log, reqID, op, "open failed", err, "key", key)
		v1.WriteError(w, http.StatusInternalServerError, "storage error")
		return
	}
	defer rc.Close()

	if partial {
		w.Header().Set("Content-Length", strconv.FormatInt(end-start+1, 10))
		w.Header().Set("Content-Range",
			"bytes "+strconv.FormatInt(start, 10)+"-"+strconv.FormatInt(end, 10)+"/"+strconv.FormatInt(info.Size, 10))
		w.WriteHeader(http.StatusPartialContent)
		logx.Info(h.Log, reqID, op, "partial content", "key", key, "start", start, "end", end, "total", info.Size)
	} else {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		w.WriteHeader(http.StatusOK)
		logx.Info(h.Log, reqID, op, "full content", "key", key, "size", info.Size)
	}

	// Отмена контекста (клиент отвалился) прерывает чтение из бэкенда,
	// defer закрывает поток на всех путях выхода.
	if _, err := io.Copy(w, rc); err != nil {
		logx.Info(h.Log, reqID, op, "stream interrupted", "key", key, "reason", err)
	}
}

// contentType: сохранённый тип -> догадка по расширению -> бинарный.
func contentType(info domain.ObjectInfo, key string) string {
	if info.ContentType != "" && info.ContentType != "application/octet-stream" {
		return info.ContentType
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
