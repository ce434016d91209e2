// Package ingest — пайплайн загрузки: следит за drop-каталогом и
// раскладывает видео и указатели в бакет по соглашениям
// videos/<id>__<rest> и pointers/<id>.json.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matlycreative/sample-gate/internal/domain"
)

// Дедуп-маркер живёт столько секунд: повторные события по тому же файлу
// того же размера игнорируются.
const dedupTTLSeconds = 300

type Watcher struct {
	Log        *log.Logger
	Storage    domain.ObjectStorage
	Cache      domain.Cache // опционален: без него дедуп только по стабильности размера
	DropDir    string
	PublicBase string

	// Интервал проверки "файл дописан" (два одинаковых размера подряд).
	SettleDelay time.Duration
}

// Run крутится до отмены контекста.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.DropDir, 0o755); err != nil {
		return fmt.Errorf("mkdir drop dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.DropDir); err != nil {
		return fmt.Errorf("watch %q: %w", w.DropDir, err)
	}
	w.Log.Printf("watching %q", w.DropDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.maybe(ctx, ev.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Printf("watch error: %v", err)
		}
	}
}

// maybe отфильтровывает мусорные события и обрабатывает файл.
func (w *Watcher) maybe(ctx context.Context, p string) {
	base := filepath.Base(p)
	if strings.HasPrefix(base, ".") || !strings.Contains(base, "__") {
		return
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".tmp", ".part":
		return
	}
	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() {
		return
	}
	if err := w.process(ctx, p); err != nil {
		w.Log.Printf("process %q failed: %v", base, err)
	}
}

func (w *Watcher) process(ctx context.Context, p string) error {
	size, err := w.waitSettled(ctx, p)
	if err != nil {
		return err
	}

	base := filepath.Base(p)
	email, rest, ok := ParseDropName(base)
	if !ok {
		w.Log.Printf("skip %q: expected 'email__something.ext'", base)
		return nil
	}
	id := domain.SafeID(email)
	vidKey := domain.VideoKey(id, rest)

	// Наблюдатель шлёт create+write на один файл — повторы гасим SETNX'ом.
	if w.Cache != nil {
		fresh, err := w.Cache.SetNX(ctx, "ingest:"+base+":"+strconv.FormatInt(size, 10), []byte("1"), dedupTTLSeconds)
		if err != nil {
			w.Log.Printf("dedup check failed (continuing): %v", err)
		} else if !fresh {
			w.Log.Printf("skip %q: already processed", base)
			return nil
		}
	}

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	ct := mime.TypeByExtension(filepath.Ext(rest))
	if ct == "" {
		ct = "application/octet-stream"
	}
	if err := w.Storage.Put(ctx, vidKey, f, size, ct); err != nil {
		return fmt.Errorf("upload video: %w", err)
	}

	ptr := domain.PointerRecord{Key: vidKey, Company: DeriveCompany(email)}
	raw, err := json.Marshal(ptr)
	if err != nil {
		return err
	}
	ptrKey := domain.PointerKey(id)
	if err := w.Storage.Put(ctx, ptrKey, bytes.NewReader(raw), int64(len(raw)), "application/json"); err != nil {
		return fmt.Errorf("upload pointer: %w", err)
	}

	w.Log.Printf("uploaded -> %s", vidKey)
	w.Log.Printf("pointer  -> %s", ptrKey)
	w.Log.Printf("landing  -> %s/p/?id=%s", strings.TrimRight(w.PublicBase, "/"), id)
	return nil
}

// waitSettled ждёт, пока файл перестанет расти (два одинаковых размера
// подряд), и возвращает финальный размер.
func (w *Watcher) waitSettled(ctx context.Context, p string) (int64, error) {
	delay := w.SettleDelay
	if delay <= 0 {
		delay = 1200 * time.Millisecond
	}

	var last int64 = -1
	for {
		fi, err := os.Stat(p)
		if err != nil {
			return 0, err
		}
		if fi.Size() == last {
			return last, nil
		}
		last = fi.Size()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(delay):
		}
	}
}
