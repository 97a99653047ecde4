// Package redis provides the Redis-backed legacy key-value store that old
// client sessions are migrated out of.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maxviazov/productivity-hub/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client is a go-redis client that also owns the embedded miniredis server
// when the config asks for an in-memory store.
type Client struct {
	*redis.Client
	mini *miniredis.Miniredis
}

// New dials Redis (or starts miniredis) and verifies the connection.
func New(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	var mini *miniredis.Miniredis
	if cfg.InMemory {
		var err error
		mini, err = miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("start in-memory redis: %w", err)
		}
		opts.Addr = mini.Addr()
		opts.Password = ""
		opts.DB = 0
	}

	c := &Client{Client: redis.NewClient(opts), mini: mini}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info().
		Str("addr", opts.Addr).
		Bool("in_memory", cfg.InMemory).
		Msg("Successfully connected to Redis")

	return c, nil
}

// Close shuts the client and, if present, the embedded server.
func (c *Client) Close() error {
	err := c.Client.Close()
	if c.mini != nil {
		c.mini.Close()
	}
	return err
}
