package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
	"github.com/matlycreative/sample-gate/internal/resolver"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/health"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/sample"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/stream"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, storage domain.ObjectStorage, cache health.Pinger) *Server {
	sampleLog := log.New(logger.Writer(), logger.Prefix()+"[sample] ", logger.Flags())
	streamLog := log.New(logger.Writer(), logger.Prefix()+"[stream] ", logger.Flags())
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())

	res := &resolver.Resolver{
		Log:        sampleLog,
		Storage:    storage,
		Base:       cfg.PublicBase,
		Mode:       cfg.DeliveryMode,
		PresignTTL: time.Duration(cfg.PresignTTLHours) * time.Hour,
	}

	sampleHandler := &sample.Handler{Log: sampleLog, Resolver: res}
	streamHandler := &stream.Handler{Log: streamLog, Storage: storage}
	healthHandler := &health.Handler{Log: healthLog, Storage: storage, Cache: cache}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(sampleHandler, streamHandler, healthHandler, logger),
		ReadTimeout:       10 * time.Second,
		// WriteTimeout не ставим: /stream отдаёт видео произвольного
		// размера, медленный клиент — это норма, не таймаут.
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
