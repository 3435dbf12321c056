package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

// StrategyStore keeps generated marketing strategies in Redis, one key per URL.
type StrategyStore struct {
	client *redis.Client
	ttl    time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewStrategyStore(opts Options) *StrategyStore {
	rdb := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})
	return &StrategyStore{client: rdb, ttl: opts.TTL}
}

func (s *StrategyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *StrategyStore) Close() error {
	return s.client.Close()
}

func strategyKey(url string) string {
	return fmt.Sprintf("strategy:%s", url)
}

// Get returns (nil, nil) on a miss.
func (s *StrategyStore) Get(ctx context.Context, url string) (*analysis.MarketingStrategy, error) {
	raw, err := s.client.Get(ctx, strategyKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out analysis.MarketingStrategy
	if err := json.Unmarshal(raw, &out); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = s.client.Del(ctx, strategyKey(url)).Err()
		return nil, nil
	}
	return &out, nil
}

// Put stores the strategy with the configured TTL; zero keeps it until deleted.
func (s *StrategyStore) Put(ctx context.Context, url string, strategy *analysis.MarketingStrategy) error {
	raw, err := json.Marshal(strategy)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, strategyKey(url), raw, s.ttl).Err()
}

func (s *StrategyStore) Delete(ctx context.Context, url string) error {
	return s.client.Del(ctx, strategyKey(url)).Err()
}
