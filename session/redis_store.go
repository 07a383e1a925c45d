package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps actor sessions in Redis with a TTL, plus a per-actor
// session set so all of an actor's sessions can be revoked at once.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string            { return fmt.Sprintf("wdi:sess:%s", id) }
func actorSetKey(actor string) string { return fmt.Sprintf("wdi:actor_sessions:%s", actor) }

func (s *RedisStore) Create(ctx context.Context, id, actorID string) error {
	b, _ := json.Marshal(newSession(actorID, s.ttl))
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(id), b, s.ttl)
	pipe.SAdd(ctx, actorSetKey(actorID), id)
	pipe.Expire(ctx, actorSetKey(actorID), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, _ := s.Get(ctx, id)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if sess != nil {
		pipe.SRem(ctx, actorSetKey(sess.ActorID), id)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) RevokeAllForActor(ctx context.Context, actorID string) error {
	ids, err := s.rdb.SMembers(ctx, actorSetKey(actorID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	pipe := s.rdb.TxPipeline()
	for _, sid := range ids {
		pipe.Del(ctx, key(sid))
	}
	pipe.Del(ctx, actorSetKey(actorID))
	_, err = pipe.Exec(ctx)
	return err
}
