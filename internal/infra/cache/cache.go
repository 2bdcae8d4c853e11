// Package cache кэш ответов поверх Redis.
//
// Читающие операции работают по схеме read-through: сначала Get, при промахе
// значение вычисляется из хранилища и кладётся через Set. Мутации обязаны
// вызывать Delete для затронутых ключей до возврата успеха - TTL лишь
// ограничивает время жизни записей, которые никто явно не инвалидировал.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache типобезопасная обёртка над Redis клиентом с фиксированным TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кэш поверх подключенного Redis клиента
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get читает значение по ключу и десериализует его в dest
// Возвращает ErrCacheMiss, если ключа нет
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: Get %s: %v", ErrUnavailable, key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: Get %s: %v", ErrUnmarshal, key, err)
	}

	return nil
}

// Set сериализует значение и кладет его по ключу с TTL кэша
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrMarshal, key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrUnavailable, key, err)
	}

	return nil
}

// Delete удаляет ключи. Отсутствующие ключи не являются ошибкой
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Delete %v: %v", ErrUnavailable, keys, err)
	}

	return nil
}

// Ping проверяет доступность Redis при старте сервиса
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrUnavailable, err)
	}
	return nil
}
