package installation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists Installations as JSON blobs in Redis, one key per
// bot installation and one per installer. Suitable for distributed,
// multi-process apps where a MemoryStore per process would miss
// installations made against a sibling process.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore wraps an existing *redis.Client. keyPrefix namespaces keys
// (e.g. "boltgo:install:") so the store can share a Redis instance with
// unrelated data.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "boltgo:install:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) botRedisKey(enterpriseID, teamID string) string {
	return fmt.Sprintf("%sbot:%s", s.keyPrefix, botKey(enterpriseID, teamID))
}

func (s *RedisStore) installerRedisKey(enterpriseID, teamID, userID string) string {
	return fmt.Sprintf("%suser:%s", s.keyPrefix, installerKey(enterpriseID, teamID, userID))
}

func (s *RedisStore) Save(ctx context.Context, inst *Installation) error {
	payload, err := json.Marshal(inst)
	if err != nil {
		return fmt.Errorf("installation: marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.botRedisKey(inst.EnterpriseID, inst.TeamID), payload, 0).Err(); err != nil {
		return fmt.Errorf("installation: save bot record: %w", err)
	}
	if inst.UserID != "" {
		if err := s.client.Set(ctx, s.installerRedisKey(inst.EnterpriseID, inst.TeamID, inst.UserID), payload, 0).Err(); err != nil {
			return fmt.Errorf("installation: save installer record: %w", err)
		}
	}
	return nil
}

func (s *RedisStore) FindBot(ctx context.Context, enterpriseID, teamID string) (*Installation, error) {
	return s.get(ctx, s.botRedisKey(enterpriseID, teamID))
}

func (s *RedisStore) FindInstaller(ctx context.Context, enterpriseID, teamID, userID string) (*Installation, error) {
	return s.get(ctx, s.installerRedisKey(enterpriseID, teamID, userID))
}

func (s *RedisStore) get(ctx context.Context, key string) (*Installation, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("installation: get %s: %w", key, err)
	}
	var inst Installation
	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, fmt.Errorf("installation: unmarshal %s: %w", key, err)
	}
	return &inst, nil
}

// DeleteAll removes the bot-level record only. Per-installer records are
// written with no expiry and are not removed: the store keeps no index of
// the user IDs they are keyed by.
func (s *RedisStore) DeleteAll(ctx context.Context, enterpriseID, teamID string) error {
	return s.client.Del(ctx, s.botRedisKey(enterpriseID, teamID)).Err()
}
