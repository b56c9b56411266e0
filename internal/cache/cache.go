package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

const doctorListKey = "doctors:public"
const doctorListTTL = 60 * time.Second

// DoctorCache keeps the public doctor catalog in Redis for a short TTL.
// A nil *DoctorCache is valid and turns every call into a no-op, so the API
// works without Redis configured.
type DoctorCache struct {
	client *redis.Client
}

func NewDoctorCache(cfg *config.Config) *DoctorCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, doctor cache disabled: %v", err)
		return nil
	}

	return &DoctorCache{client: client}
}

func (c *DoctorCache) GetDoctorList(ctx context.Context) (string, bool) {
	if c == nil {
		return "", false
	}

	payload, err := c.client.Get(ctx, doctorListKey).Result()
	if err != nil {
		return "", false
	}
	return payload, true
}

func (c *DoctorCache) SetDoctorList(ctx context.Context, payload string) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, doctorListKey, payload, doctorListTTL).Err(); err != nil {
		log.Printf("failed to cache doctor list: %v", err)
	}
}

// Invalidate drops the cached catalog after any doctor mutation.
func (c *DoctorCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, doctorListKey).Err(); err != nil {
		log.Printf("failed to invalidate doctor cache: %v", err)
	}
}
