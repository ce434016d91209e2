package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
	redisx "github.com/matlycreative/sample-gate/internal/infra/cache/redis"
	s3storage "github.com/matlycreative/sample-gate/internal/infra/storage/s3"
	"github.com/matlycreative/sample-gate/internal/transport/web"
	"github.com/matlycreative/sample-gate/internal/transport/web/v1/health"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	storage domain.ObjectStorage
	cache   domain.Cache
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}
	s3, err := s3storage.New(ctx, s3cfg, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}
	base.Println("S3 storage is initialized")

	// Redis опционален: шлюзу он не нужен, проверяем только если настроен.
	var cache domain.Cache
	var cachePinger health.Pinger
	if cfg.RedisAddr != "" {
		base.Println("init Redis")
		rc := redisx.New(redisx.Config{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, redisLog)
		if err := rc.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed init redis: %w", err)
		}
		cache, cachePinger = rc, rc
		base.Println("Redis is initialized")
	}

	base.Println("init Server")
	server := web.New(serverLog, cfg, s3, cachePinger)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		storage: s3,
		cache:   cache,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	if a.cache != nil {
		a.cache.Close()
	}

	return nil
}
