package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/bobarin/vocalforge/internal/models"
)

const (
	recentKey     = "gen:recent"
	recentMax     = 20
	generationTTL = 24 * time.Hour
)

// Cache holds finished generations in redis so the history endpoints can
// serve recent results without hitting the backend again. Entries expire
// after a day; the recent list is capped, oldest dropped first.
type Cache struct {
	client *redis.Client
}

func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func generationKey(id uuid.UUID) string {
	return "gen:" + id.String()
}

// Store saves a generation and pushes it onto the recent list.
func (c *Cache) Store(ctx context.Context, gen *models.Generation) error {
	data, err := json.Marshal(gen)
	if err != nil {
		return fmt.Errorf("failed to marshal generation: %w", err)
	}

	if err := c.client.Set(ctx, generationKey(gen.ID), data, generationTTL).Err(); err != nil {
		return fmt.Errorf("failed to store generation: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.LPush(ctx, recentKey, gen.ID.String())
	pipe.LTrim(ctx, recentKey, 0, recentMax-1)
	pipe.Expire(ctx, recentKey, generationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update recent list: %w", err)
	}

	return nil
}

// Get retrieves a generation by id. Returns (nil, nil) when the entry is
// missing or expired.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*models.Generation, error) {
	data, err := c.client.Get(ctx, generationKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}

	var gen models.Generation
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation: %w", err)
	}

	return &gen, nil
}

// Recent returns the most recent generations, newest first. IDs whose
// entries have already expired are skipped.
func (c *Cache) Recent(ctx context.Context) ([]models.Generation, error) {
	ids, err := c.client.LRange(ctx, recentKey, 0, recentMax-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent list: %w", err)
	}

	var gens []models.Generation
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Printf("[Cache] Skipping malformed generation id %q", raw)
			continue
		}
		gen, err := c.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if gen == nil {
			continue // expired
		}
		gens = append(gens, *gen)
	}

	return gens, nil
}
