package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/matlycreative/sample-gate/internal/app"
)

// @title       sample-gate API
// @version     1.0
// @description Шлюз выдачи видео-сэмплов: резолв указателя и отдача с Range.
// @BasePath    /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	if err := a.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
