package memory

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matlycreative/sample-gate/internal/domain"
)

// Storage — хранилище в памяти для тестов. Повторяет контракт
// domain.ObjectStorage, включая лексикографический порядок листинга S3.
type Storage struct {
	mu   sync.RWMutex
	objs map[string]object
}

type object struct {
	data         []byte
	contentType  string
	etag         string
	lastModified time.Time
}

func New() *Storage {
	return &Storage{objs: map[string]object{}}
}

// PutBytes кладёт объект напрямую (шорткат для подготовки тестов).
func (s *Storage) PutBytes(key string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := md5.Sum(data)
	s.objs[key] = object{
		data:         append([]byte(nil), data...),
		contentType:  contentType,
		etag:         hex.EncodeToString(sum[:]),
		lastModified: time.Now().UTC(),
	}
}

func (s *Storage) Stat(_ context.Context, key string) (domain.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objs[key]
	if !ok {
		return domain.ObjectInfo{}, domain.ErrNotFound
	}
	return domain.ObjectInfo{
		Key:          key,
		Size:         int64(len(o.data)),
		ContentType:  o.contentType,
		ETag:         o.etag,
		LastModified: o.lastModified,
	}, nil
}

func (s *Storage) Open(_ context.Context, key string, start, end int64) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	data := o.data
	if start >= 0 {
		if start > int64(len(data)) {
			return nil, fmt.Errorf("range start %d beyond size %d", start, len(data))
		}
		if end >= int64(len(data)) {
			end = int64(len(data)) - 1
		}
		data = data[start : end+1]
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Storage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objs[key]
	return ok, nil
}

func (s *Storage) List(_ context.Context, prefix string, max int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.objs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if max > 0 && len(keys) > max {
		keys = keys[:max]
	}
	return keys, nil
}

func (s *Storage) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objs[key]; !ok {
		return "", domain.ErrNotFound
	}
	return fmt.Sprintf("https://storage.invalid/%s?X-Expires=%d", url.PathEscape(key), int(ttl.Seconds())), nil
}

func (s *Storage) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.PutBytes(key, data, contentType)
	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objs, key)
	return nil
}

func (s *Storage) Ping(context.Context) error { return nil }

// Keys возвращает все ключи (для ассертов в тестах).
func (s *Storage) Keys() []string {
	keys, _ := s.List(context.Background(), "", 0)
	return keys
}
