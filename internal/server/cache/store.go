// Package cache хранит готовые HTTP-ответы для output cache.
//
// Реализации:
//   - MemoryStore — процессный кэш, по умолчанию
//   - RedisStore — общий кэш для нескольких экземпляров сервера
package cache

import (
	"context"
	"time"
)

// Entry — сохранённый ответ: код, тип содержимого и тело.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store — хранилище ответов.
//
// Get возвращает (entry, true, nil) при попадании и (Entry{}, false, nil) при промахе.
// Generation — номер поколения префикса, 0 пока префикс ни разу не сбрасывали.
// InvalidatePrefix сначала увеличивает поколение префикса, затем удаляет его ключи.
//
// Поколение входит в ключ записи: ответ, посчитанный до сброса и записанный после,
// ляжет под старым поколением и читателям нового поколения не попадётся.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry, ttl time.Duration) error
	Generation(ctx context.Context, prefix string) (uint64, error)
	InvalidatePrefix(ctx context.Context, prefix string) error
}
