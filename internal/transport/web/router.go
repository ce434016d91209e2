package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/matlycreative/sample-gate/internal/docs"
	"github.com/matlycreative/sample-gate/internal/transport/web/mw"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/health"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/sample"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/stream"
)

func newRouter(sh *sample.Handler, st *stream.Handler, hh *health.Handler, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// шлюз
	mux.HandleFunc("GET /api/sample", sh.Resolve)
	mux.HandleFunc("GET /stream", st.Serve)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}
