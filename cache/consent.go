package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConsentKeyPrefix is the storage key of the cookie banner decision.
const ConsentKeyPrefix = "beatwave_cookie_consent"

// ConsentTTL bounds how long a decision is remembered.
const ConsentTTL = 365 * 24 * time.Hour

// ConsentStore remembers each visitor's cookie banner decision. set is false
// until the visitor has accepted or declined.
type ConsentStore interface {
	Get(ctx context.Context, visitorID string) (accepted, set bool, err error)
	Set(ctx context.Context, visitorID string, accepted bool) error
}

func consentKey(visitorID string) string {
	return ConsentKeyPrefix + ":" + visitorID
}

// redisConsentStore Redis 实现
type redisConsentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisConsentStore stores decisions under beatwave_cookie_consent:<visitor>.
func NewRedisConsentStore(client *redis.Client) ConsentStore {
	return &redisConsentStore{client: client, ttl: ConsentTTL}
}

func (s *redisConsentStore) Get(ctx context.Context, visitorID string) (bool, bool, error) {
	val, err := s.client.Get(ctx, consentKey(visitorID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read consent for %s: %w", visitorID, err)
	}
	accepted, err := strconv.ParseBool(val)
	if err != nil {
		// 非法值视为未设置，重新弹出 banner
		return false, false, nil
	}
	return accepted, true, nil
}

func (s *redisConsentStore) Set(ctx context.Context, visitorID string, accepted bool) error {
	err := s.client.Set(ctx, consentKey(visitorID), strconv.FormatBool(accepted), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store consent for %s: %w", visitorID, err)
	}
	return nil
}

// memoryConsentStore 内存实现，Redis 未启用时使用
type memoryConsentStore struct {
	mu   sync.RWMutex
	data map[string]bool
}

// NewMemoryConsentStore returns a process-local ConsentStore.
func NewMemoryConsentStore() ConsentStore {
	return &memoryConsentStore{data: make(map[string]bool)}
}

func (s *memoryConsentStore) Get(_ context.Context, visitorID string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accepted, ok := s.data[consentKey(visitorID)]
	return accepted, ok, nil
}

func (s *memoryConsentStore) Set(_ context.Context, visitorID string, accepted bool) error {
	s.mu.Lock()
	s.data[consentKey(visitorID)] = accepted
	s.mu.Unlock()
	return nil
}
