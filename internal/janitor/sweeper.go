// Package janitor — отложенное удаление сэмплов по маркерам
// delete_markers/<id>__YYYYMMDD.json: {"id": "...", "due": "RFC3339"}.
// Просроченный маркер сносит указатель, все видео id и сам маркер.
package janitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/matlycreative/sample-gate/internal/domain"
)

type Sweeper struct {
	Log     *log.Logger
	Storage domain.ObjectStorage
	Prefix  string // по умолчанию domain.MarkerPrefix
	DryRun  bool

	Now func() time.Time // для тестов; nil -> time.Now
}

// Sweep — один проход. Возвращает число обработанных (просроченных) id.
// Ошибки отдельных маркеров логируются и не прерывают проход.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	prefix := s.Prefix
	if prefix == "" {
		prefix = domain.MarkerPrefix
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	markers, err := s.Storage.List(ctx, prefix+"/", 0)
	if err != nil {
		return 0, fmt.Errorf("list markers: %w", err)
	}

	due := 0
	for _, mkey := range markers {
		rec, err := s.marker(ctx, mkey)
		if err != nil {
			s.Log.Printf("skip unreadable marker %q: %v", mkey, err)
			continue
		}
		dueAt, err := parseDue(rec.Due)
		if err != nil || rec.ID == "" {
			s.Log.Printf("skip bad marker %q", mkey)
			continue
		}
		if dueAt.After(now().UTC()) {
			continue
		}

		s.delete(ctx, domain.PointerKey(rec.ID))
		vkeys, err := s.Storage.List(ctx, domain.VideoPrefix(rec.ID), 0)
		if err != nil {
			s.Log.Printf("list videos for %q failed: %v", rec.ID, err)
		}
		for _, vk := range vkeys {
			s.delete(ctx, vk)
		}
		// маркер — последним, чтобы оборванный проход повторился
		s.delete(ctx, mkey)
		due++
	}

	s.Log.Printf("done, deleted %d id(s)", due)
	return due, nil
}

func (s *Sweeper) marker(ctx context.Context, key string) (domain.DeleteMarker, error) {
	var rec domain.DeleteMarker

	rc, err := s.Storage.Open(ctx, key, -1, 0)
	if err != nil {
		return rec, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return rec, err
	}
	err = json.Unmarshal(raw, &rec)
	return rec, err
}

func (s *Sweeper) delete(ctx context.Context, key string) {
	if s.DryRun {
		s.Log.Printf("[dry] delete %s", key)
		return
	}
	if err := s.Storage.Remove(ctx, key); err != nil {
		s.Log.Printf("delete %s failed: %v", key, err)
		return
	}
	s.Log.Printf("deleted %s", key)
}

// parseDue принимает RFC3339 и наивный ISO без зоны (трактуем как UTC).
func parseDue(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
