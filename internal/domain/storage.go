package domain

import (
	"context"
	"io"
	"time"
)

// ObjectInfo — метаданные объекта, которые потребляет выдача.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// ObjectStorage — хранилище бинарного контента (S3/MinIO/R2).
// Единственный владелец состояния системы; шлюз только читает,
// пишут watcher и sweeper.
type ObjectStorage interface {
	// Метаданные объекта; ErrNotFound, если объекта нет.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Поток содержимого. start/end — включительные границы байтов;
	// start < 0 означает весь объект.
	Open(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)
	// Проверка существования без скачивания.
	Exists(ctx context.Context, key string) (bool, error)
	// Ключи с данным префиксом; max <= 0 — без ограничения.
	// Порядок — порядок листинга бэкенда, не гарантируется.
	List(ctx context.Context, prefix string, max int) ([]string, error)
	// Временная подписанная ссылка на чтение одного объекта.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	// Загрузка (watcher) и удаление (sweeper).
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}
