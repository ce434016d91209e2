package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/matlycreative/sample-gate/internal/config"
	"github.com/matlycreative/sample-gate/internal/domain"
	redisx "github.com/matlycreative/sample-gate/internal/infra/cache/redis"
	s3storage "github.com/matlycreative/sample-gate/internal/infra/storage/s3"
	"github.com/matlycreative/sample-gate/internal/ingest"
)

func main() {
	base := log.New(os.Stdout, "[watcher] ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		base.Fatalf("config: %v", err)
	}
	if cfg.DropDir == "" {
		base.Fatal("DROP_DIR is required")
	}

	s3, err := s3storage.New(ctx, s3storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	}, log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags()))
	if err != nil {
		base.Fatalf("s3: %v", err)
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisx.New(redisx.Config{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.RedisPassword,
		}, log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags()))
		if err := rc.Ping(ctx); err != nil {
			base.Fatalf("redis: %v", err)
		}
		defer rc.Close()
		cache = rc
	}

	w := &ingest.Watcher{
		Log:        base,
		Storage:    s3,
		Cache:      cache,
		DropDir:    cfg.DropDir,
		PublicBase: cfg.PublicBase,
	}
	if err := w.Run(ctx); err != nil {
		base.Fatalf("run: %v", err)
	}
}
