// Package prices keeps the per-gram gold and silver prices that the nisab
// threshold is derived from.
package prices

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/ummah/internal/calc"
)

const pricesKey = "prices:metals"

type Book interface {
	Current(ctx context.Context) (calc.MetalPrices, error)
	Update(ctx context.Context, p calc.MetalPrices) error
}

// StaticBook keeps prices in process memory.
type StaticBook struct {
	mu     sync.RWMutex
	prices calc.MetalPrices
}

func NewStaticBook(initial calc.MetalPrices) *StaticBook {
	return &StaticBook{prices: initial}
}

func (b *StaticBook) Current(ctx context.Context) (calc.MetalPrices, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.prices, nil
}

func (b *StaticBook) Update(ctx context.Context, p calc.MetalPrices) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices = p
	return nil
}

// RedisBook shares prices between instances through a redis hash. Reads
// fall back to the configured prices when redis is empty or unreachable.
type RedisBook struct {
	rdb      *redis.Client
	fallback calc.MetalPrices
}

func NewRedisBook(rdb *redis.Client, fallback calc.MetalPrices) *RedisBook {
	return &RedisBook{rdb: rdb, fallback: fallback}
}

func (b *RedisBook) Current(ctx context.Context) (calc.MetalPrices, error) {
	vals, err := b.rdb.HGetAll(ctx, pricesKey).Result()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read prices from redis, using configured prices")
		return b.fallback, nil
	}
	if len(vals) == 0 {
		return b.fallback, nil
	}

	p, err := decode(vals)
	if err != nil {
		log.Warn().Err(err).Msg("malformed prices in redis, using configured prices")
		return b.fallback, nil
	}
	return p, nil
}

func (b *RedisBook) Update(ctx context.Context, p calc.MetalPrices) error {
	err := b.rdb.HSet(ctx, pricesKey, map[string]any{
		"gold":       strconv.FormatFloat(p.GoldPerGram, 'f', -1, 64),
		"silver":     strconv.FormatFloat(p.SilverPerGram, 'f', -1, 64),
		"updated_at": p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		log.Error().Err(err).Msg("failed to write prices to redis")
		return fmt.Errorf("update prices: %w", err)
	}
	return nil
}

func decode(vals map[string]string) (calc.MetalPrices, error) {
	var p calc.MetalPrices
	var err error
	if p.GoldPerGram, err = strconv.ParseFloat(vals["gold"], 64); err != nil {
		return p, fmt.Errorf("gold: %w", err)
	}
	if !calc.ValidPrice(p.GoldPerGram) {
		return p, fmt.Errorf("gold: price %v out of range", p.GoldPerGram)
	}
	if p.SilverPerGram, err = strconv.ParseFloat(vals["silver"], 64); err != nil {
		return p, fmt.Errorf("silver: %w", err)
	}
	if !calc.ValidPrice(p.SilverPerGram) {
		return p, fmt.Errorf("silver: price %v out of range", p.SilverPerGram)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, vals["updated_at"]); err != nil {
		return p, fmt.Errorf("updated_at: %w", err)
	}
	return p, nil
}
