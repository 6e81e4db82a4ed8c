package save

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/starforge/tether/codec"
	"github.com/starforge/tether/log"
	"github.com/starforge/tether/sim"
)

// Manager runs save and load passes. At most one pass is in flight at a time;
// each pass gets its own codec session so entity ids never leak between
// passes.
type Manager struct {
	world   *sim.World
	codec   *codec.Codec
	storage Storage
	logger  zerolog.Logger
}

func NewManager(w *sim.World, c *codec.Codec, storage Storage, logger zerolog.Logger) *Manager {
	return &Manager{world: w, codec: c, storage: storage, logger: logger}
}

// Save encodes the named values into slot under a fresh session and writes
// them atomically. The registry is pre-indexed against the world's enumeration
// order, so the ids in the slot do not depend on map iteration order. Returns
// the pass session; its registry tells the caller which entity got which id.
func (m *Manager) Save(ctx context.Context, slot string, values map[string]any) (*codec.Session, error) {
	sess := codec.NewSession(m.world, m.logger)
	sess.Registry.IndexWorld(m.world)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	payloads := make(map[string]string, len(values))
	for _, key := range keys {
		payload, err := m.codec.Encode(sess, values[key])
		if err != nil {
			return nil, err
		}
		payloads[key] = payload
	}

	manifest := Manifest{
		Session: sess.ID.String(),
		SavedAt: m.world.SimTime(),
		Keys:    keys,
	}
	if err := m.storage.SetPayloads(ctx, slot, payloads, manifest); err != nil {
		return nil, err
	}
	m.logger.Info().
		Str("slot", slot).
		Str("session_id", sess.ID.String()).
		Int("values", len(keys)).
		Msg("save pass complete")
	return sess, nil
}

// LoadResult is the outcome of one load (or resolve) pass over a slot.
type LoadResult struct {
	Manifest Manifest
	// Values holds every successfully decoded value by key.
	Values map[string]any
	// Unresolved holds payloads whose entity references could not be resolved
	// yet. Callers bind the missing entities on the session's registry and
	// call Resolve to retry.
	Unresolved map[string]string
	// Failed holds keys whose payloads are corrupt or of unknown kind. Fatal
	// for those keys only; the rest of the slot loads normally.
	Failed map[string]error
}

// Load reads the slot's manifest and decodes every payload under sess.
// Unresolved entity references and corrupt payloads are reported per key
// rather than aborting the pass.
func (m *Manager) Load(ctx context.Context, slot string, sess *codec.Session) (*LoadResult, error) {
	manifest, err := m.storage.GetManifest(ctx, slot)
	if err != nil {
		return nil, err
	}
	res := &LoadResult{
		Manifest:   manifest,
		Values:     map[string]any{},
		Unresolved: map[string]string{},
		Failed:     map[string]error{},
	}
	for _, key := range manifest.Keys {
		payload, err := m.storage.GetPayload(ctx, slot, key)
		if err != nil {
			return nil, err
		}
		m.decodeInto(sess, key, payload, res)
	}
	m.logger.Info().
		Str("slot", slot).
		Int("loaded", len(res.Values)).
		Int("unresolved", len(res.Unresolved)).
		Int("failed", len(res.Failed)).
		Msg("load pass complete")
	return res, nil
}

// Resolve retries the unresolved payloads of an earlier Load, typically after
// the caller has re-instantiated entities and bound their ids on the
// session's registry. Successes move into Values.
func (m *Manager) Resolve(sess *codec.Session, res *LoadResult) {
	// decodeInto re-inserts still-unresolved keys, so iterate a detached map.
	pending := res.Unresolved
	res.Unresolved = make(map[string]string)
	for key, payload := range pending {
		m.decodeInto(sess, key, payload, res)
	}
}

func (m *Manager) decodeInto(sess *codec.Session, key, payload string, res *LoadResult) {
	v, err := m.codec.Decode(sess, payload)
	tag, _, _ := strings.Cut(payload, "\n")
	switch {
	case err == nil:
		res.Values[key] = v
	case codec.IsUnresolved(err):
		res.Unresolved[key] = payload
		log.Payload(m.logger.Debug(), tag, key).Msg("reference unresolved, caller may retry")
	default:
		res.Failed[key] = err
		log.Payload(m.logger.Warn(), tag, key).Err(err).Msg("payload failed to decode")
	}
}
