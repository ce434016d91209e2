package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/matlycreative/sample-gate/internal/transport/web/logx"
	"github.com/matlycreative/sample-gate/internal/transport/web/mw"
	v1 "github.com/matlycreative/sample-gate/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log     *log.Logger
	Storage Pinger
	Cache   Pinger // опционален (nil — не проверяем)
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Проверка, жив ли сервис (не зависит от хранилища)
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /v1/healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Проверка готовности (включая пинг хранилища и Redis, если настроен)
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /v1/readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Storage.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "storage ping failed", err)
		v1.WriteError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Ping(ctx); err != nil {
			logx.Error(h.Log, reqID, op, "cache ping failed", err)
			v1.WriteError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
