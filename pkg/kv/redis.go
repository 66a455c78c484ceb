package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

// RedisStore keeps each collection in a Redis hash, with document keys
// as hash fields and JSON documents as values.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, collection, key string, doc []byte) error {
	if err := s.client.HSet(ctx, s.client.CollectionKey(collection), key, string(doc)); err != nil {
		return fmt.Errorf("kv put %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RedisStore) GetByKey(ctx context.Context, collection, key string) ([]byte, error) {
	val, err := s.client.HGet(ctx, s.client.CollectionKey(collection), key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kv get %s/%s: %w", collection, key, err)
	}
	return []byte(val), nil
}

func (s *RedisStore) Scan(ctx context.Context, collection string) ([][]byte, error) {
	all, err := s.client.HGetAll(ctx, s.client.CollectionKey(collection))
	if err != nil {
		return nil, fmt.Errorf("kv scan %s: %w", collection, err)
	}
	docs := make([][]byte, 0, len(all))
	for _, val := range all {
		docs = append(docs, []byte(val))
	}
	return docs, nil
}

func (s *RedisStore) UpdatePartial(ctx context.Context, collection, key string, fields map[string]any) error {
	current, err := s.GetByKey(ctx, collection, key)
	if err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return fmt.Errorf("kv update %s/%s: decoding stored document: %w", collection, key, err)
	}
	for field, value := range fields {
		doc[field] = value
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("kv update %s/%s: encoding merged document: %w", collection, key, err)
	}
	return s.Put(ctx, collection, key, merged)
}

func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.HDel(ctx, s.client.CollectionKey(collection), key); err != nil {
		return fmt.Errorf("kv delete %s/%s: %w", collection, key, err)
	}
	return nil
}
