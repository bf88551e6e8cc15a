package redis

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const (
	servicePrefix = "marketplace."
	jwtPrefix     = servicePrefix + "jwt."
	paymentPrefix = servicePrefix + "payment."
)

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Username:    cfg.User,
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})
	client.client = redisClient

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}
	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteJWTToBlacklist revokes a token until it would have expired anyway.
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, jwtPrefix+jwtStr, true, jwtTTL).Err()
}

// CheckJWTInBlacklist returns nil when the token is revoked and redis.Nil when it is not.
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, jwtPrefix+jwtStr).Err()
}

// IsRevoked is CheckJWTInBlacklist folded into a bool. Lookup failures count as revoked.
func (c *Client) IsRevoked(ctx context.Context, jwtStr string) bool {
	err := c.CheckJWTInBlacklist(ctx, jwtStr)
	return err != redis.Nil
}

// MarkPaymentEvent records a processed payment callback. It returns false
// when the event was already seen within ttl.
func (c *Client) MarkPaymentEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, paymentPrefix+eventID, time.Now().Unix(), ttl).Result()
}

// ForgetPaymentEvent drops a mark so the provider's retry is processed again.
func (c *Client) ForgetPaymentEvent(ctx context.Context, eventID string) error {
	return c.client.Del(ctx, paymentPrefix+eventID).Err()
}
