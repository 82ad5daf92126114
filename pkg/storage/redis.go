package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the keys written by RedisStore.
const DefaultRedisPrefix = "checkedit:templates"

// RedisStore keeps each record as a JSON value plus an index set of ids.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// OpenRedis connects to addr and checks the connection.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("storage: redis %s: %w", addr, err)
	}
	return NewRedis(rdb, prefix), nil
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }
func (s *RedisStore) indexKey() string     { return s.prefix + ":index" }

func (s *RedisStore) get(ctx context.Context, id string) (*Record, error) {
	val, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %q: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("storage: decode %q: %w", id, err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec Record) (Record, error) {
	var prev *Record
	if rec.ID != "" {
		p, err := s.get(ctx, rec.ID)
		if err != nil {
			return Record{}, err
		}
		prev = p
	}
	out, err := prepare(rec, prev, s.now().UTC())
	if err != nil {
		return Record{}, err
	}
	data, err := json.Marshal(out)
	if err != nil {
		return Record{}, fmt.Errorf("storage: encode %q: %w", out.ID, err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(out.ID), data, 0)
		pipe.SAdd(ctx, s.indexKey(), out.ID)
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("storage: redis save %q: %w", out.ID, err)
	}
	return out, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (Record, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return *rec, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: redis list: %w", err)
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		rec, err := s.get(ctx, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// value expired or was removed outside the store
			s.rdb.SRem(ctx, s.indexKey(), id)
			continue
		}
		out = append(out, summarize(*rec))
	}
	sortSummaries(out)
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("storage: redis delete %q: %w", id, err)
	}
	s.rdb.SRem(ctx, s.indexKey(), id)
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
