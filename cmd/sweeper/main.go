package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/matlycreative/sample-gate/internal/config"
	s3storage "github.com/matlycreative/sample-gate/internal/infra/storage/s3"
	"github.com/matlycreative/sample-gate/internal/janitor"
)

// Один проход и выход — запускается кроном.
func main() {
	base := log.New(os.Stdout, "[sweeper] ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		base.Fatalf("config: %v", err)
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

	s := &janitor.Sweeper{Log: base, Storage: s3, DryRun: cfg.DryRun}
	if _, err := s.Sweep(ctx); err != nil {
		base.Fatalf("sweep: %v", err)
	}
}
