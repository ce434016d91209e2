package domain

import "context"

// Cache — k/v с SETNX-семантикой. Реализация — Redis.
// Шлюз ответы не кэширует (указатели читаются заново на каждый запрос);
// кэш нужен только watcher'у для дедупликации файловых событий.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetNX ставит значение, только если ключа ещё нет.
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Ping(context.Context) error
	Close()
}
