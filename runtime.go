package tether

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/starforge/tether/codec"
	"github.com/starforge/tether/log"
	"github.com/starforge/tether/save"
	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

// Runtime is one fully wired world instance: the simulation container, the
// persistence codec with the built-in kinds, and a redis-backed save manager,
// all built from a WorldConfig.
type Runtime struct {
	World  *sim.World
	Codec  *codec.Codec
	Saves  *save.Manager
	Slot   string
	Logger zerolog.Logger

	storage save.Storage
}

// OpenWorld builds a Runtime from config: a logger at cfg.LogLevel writing to
// stderr, a redis save store at cfg.RedisAddress, and a save manager bound to
// cfg.SaveSlot.
func OpenWorld(cfg WorldConfig, system types.SysLoc) *Runtime {
	logger := log.New(os.Stderr, cfg.LogLevel)
	world := sim.NewWorld(system, logger)
	c := NewCodec()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
	storage := save.NewRedisStorage(client)
	return &Runtime{
		World:   world,
		Codec:   c,
		Saves:   save.NewManager(world, c, storage, logger),
		Slot:    cfg.SaveSlot,
		Logger:  logger,
		storage: storage,
	}
}

// Save runs a save pass into the configured slot.
func (r *Runtime) Save(ctx context.Context, values map[string]any) (*codec.Session, error) {
	return r.Saves.Save(ctx, r.Slot, values)
}

// Load runs a load pass over the configured slot.
func (r *Runtime) Load(ctx context.Context, sess *codec.Session) (*save.LoadResult, error) {
	return r.Saves.Load(ctx, r.Slot, sess)
}

// Close releases the save store's connection.
func (r *Runtime) Close(ctx context.Context) error {
	return r.storage.Close(ctx)
}
