package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Carts are abandoned far more often than they convert; let Redis reap them.
const cartTTL = 14 * 24 * time.Hour

// RedisRepository stores carts in Redis so they survive app restarts.
// Observers are still process-local.
type RedisRepository struct {
	client *redis.Client

	mu        sync.RWMutex
	observers []Observer
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

func (r *RedisRepository) Read(ctx context.Context, cartID string) ([]Item, error) {
	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart failed: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (r *RedisRepository) Write(ctx context.Context, cartID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cartID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("write cart failed: %w", err)
	}

	r.notify(cartID, items)
	return nil
}

func (r *RedisRepository) Add(ctx context.Context, cartID string, item Item) ([]Item, error) {
	items, err := r.Read(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items = merge(items, item)
	if err := r.Write(ctx, cartID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RedisRepository) Clear(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("clear cart failed: %w", err)
	}

	r.notify(cartID, nil)
	return nil
}

func (r *RedisRepository) Subscribe(observer Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, observer)
	r.mu.Unlock()
}

func (r *RedisRepository) notify(cartID string, items []Item) {
	r.mu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, observer := range observers {
		observer(cartID, items)
	}
}
