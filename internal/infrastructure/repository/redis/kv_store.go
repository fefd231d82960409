package redis

import (
	"context"
	"errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
)

// KVStore keeps season values as plain redis strings under prefix:namespace:key.
type KVStore struct {
	client goredis.Cmdable
	prefix string
}

func NewKVStore(client goredis.Cmdable, prefix, namespace string) *KVStore {
	return &KVStore{client: client, prefix: keyPrefix(prefix, namespace)}
}

// NewClient parses a redis:// URL and checks the connection.
func NewClient(ctx context.Context, rawURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, crerr.Wrap(err, "parse REDIS_URL")
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "ping redis")
	}
	return client, nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, crerr.Wrapf(err, "redis get %q", key)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return crerr.Wrapf(err, "redis set %q", key)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return crerr.Wrapf(err, "redis del %q", key)
	}
	return nil
}

func (s *KVStore) key(key string) string {
	return s.prefix + key
}

func keyPrefix(prefix, namespace string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{prefix, namespace} {
		part = strings.Trim(strings.TrimSpace(part), ":")
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ":") + ":"
}
