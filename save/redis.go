package save

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

var _ Storage = &RedisStorage{}

type RedisStorage struct {
	currentClient *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{currentClient: client}
}

// SetPayloads writes every payload of a pass plus the manifest in one
// transaction, so a half-written slot is never observable.
func (r *RedisStorage) SetPayloads(ctx context.Context, slot string, payloads map[string]string, m Manifest) error {
	bz, err := json.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "")
	}
	_, err = r.currentClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, payload := range payloads {
			pipe.Set(ctx, payloadKey(slot, key), payload, 0)
		}
		pipe.Set(ctx, manifestKey(slot), bz, 0)
		return nil
	})
	return eris.Wrap(err, "")
}

func (r *RedisStorage) GetPayload(ctx context.Context, slot, key string) (string, error) {
	res, err := r.currentClient.Get(ctx, payloadKey(slot, key)).Result()
	if eris.Is(err, redis.Nil) {
		return "", eris.Wrap(ErrNoPayload, key)
	}
	if err != nil {
		return "", eris.Wrap(err, "")
	}
	return res, nil
}

func (r *RedisStorage) GetManifest(ctx context.Context, slot string) (Manifest, error) {
	var m Manifest
	bz, err := r.currentClient.Get(ctx, manifestKey(slot)).Bytes()
	if eris.Is(err, redis.Nil) {
		return m, eris.Wrap(ErrNoManifest, slot)
	}
	if err != nil {
		return m, eris.Wrap(err, "")
	}
	if err := json.Unmarshal(bz, &m); err != nil {
		return m, eris.Wrap(err, "")
	}
	return m, nil
}

func (r *RedisStorage) DeleteSlot(ctx context.Context, slot string) error {
	m, err := r.GetManifest(ctx, slot)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(m.Keys)+1)
	for _, key := range m.Keys {
		keys = append(keys, payloadKey(slot, key))
	}
	keys = append(keys, manifestKey(slot))
	return eris.Wrap(r.currentClient.Del(ctx, keys...).Err(), "")
}

func (r *RedisStorage) Close(_ context.Context) error {
	return eris.Wrap(r.currentClient.Close(), "")
}
