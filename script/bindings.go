// Package script is the thin surface the embedded scripting environment calls
// into: entity queries that hand out deletion-safe handles, the generic
// serialize/deserialize entry points backed by the persistence codec, and a
// few world-query helpers (time, location, randomness, messages).
package script

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/starforge/tether"
	"github.com/starforge/tether/codec"
	"github.com/starforge/tether/selector"
	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

var ErrNoMatch = eris.New("no entity matches selector")

// A cloud lingers for two days of game time after its arrival; ships overdue
// by more than that enter space with no cloud left to mark them.
const hypercloudDuration = 60 * 60 * 24 * 2

// MessageSink receives player-facing messages posted by scripts.
type MessageSink interface {
	Message(from, msg string)
	ImportantMessage(from, msg string)
}

// LogSink is the default MessageSink; it writes messages to the logger.
type LogSink struct {
	Logger zerolog.Logger
}

func (s *LogSink) Message(from, msg string) {
	s.Logger.Info().Str("from", from).Msg(msg)
}

func (s *LogSink) ImportantMessage(from, msg string) {
	s.Logger.Warn().Str("from", from).Bool("important", true).Msg(msg)
}

// Bindings is one scripting environment's view of a world. All calls run on
// the simulation thread; Bindings holds no locks.
type Bindings struct {
	world   *sim.World
	codec   *codec.Codec
	session *codec.Session
	rng     *rand.Rand
	sink    MessageSink
	logger  zerolog.Logger
}

type Option func(*Bindings)

// WithMessageSink routes Message and ImportantMessage somewhere other than
// the logger.
func WithMessageSink(s MessageSink) Option {
	return func(b *Bindings) { b.sink = s }
}

// WithRand replaces the randomness source, mostly so tests can seed it.
func WithRand(r *rand.Rand) Option {
	return func(b *Bindings) { b.rng = r }
}

// WithCodec replaces the default codec, for environments that register extra
// persisted kinds.
func WithCodec(c *codec.Codec) Option {
	return func(b *Bindings) { b.codec = c }
}

func New(w *sim.World, logger zerolog.Logger, opts ...Option) *Bindings {
	b := &Bindings{
		world:  w,
		codec:  tether.NewCodec(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
	b.sink = &LogSink{Logger: logger}
	for _, opt := range opts {
		opt(b)
	}
	b.session = codec.NewSession(w, logger)
	return b
}

// Session returns the current persistence session.
func (b *Bindings) Session() *codec.Session { return b.session }

// BeginSession starts a fresh persistence pass. Entity ids assigned by the
// previous session stop being meaningful.
func (b *Bindings) BeginSession() *codec.Session {
	b.session = codec.NewSession(b.world, b.logger)
	return b.session
}

// GetPlayer returns a handle to the player's ship.
func (b *Bindings) GetPlayer() (*tether.Handle, error) {
	return tether.NewHandle(b.world, b.world.Player())
}

// GetHandle returns a handle to the first live entity (in world enumeration
// order) matching the selector expression. Fails with
// selector.ErrMalformedSelector or ErrNoMatch.
func (b *Bindings) GetHandle(sel string) (*tether.Handle, error) {
	parsed, err := selector.Parse(sel)
	if err != nil {
		return nil, err
	}
	for _, e := range b.world.LiveEntities() {
		if parsed.Matches(b.world, e) {
			return tether.NewHandle(b.world, e)
		}
	}
	return nil, eris.Wrap(ErrNoMatch, sel)
}

// Serialize encodes v into its tagged payload using the current session.
func (b *Bindings) Serialize(v any) (string, error) {
	return b.codec.Encode(b.session, v)
}

// Deserialize decodes a tagged payload using the current session.
func (b *Bindings) Deserialize(payload string) (any, error) {
	return b.codec.Decode(b.session, payload)
}

func (b *Bindings) GameTime() float64 { return b.world.SimTime() }

func (b *Bindings) CurrentSystem() types.SysLoc { return b.world.CurrentSystem() }

// FormatDate renders a game time for display; see the package-level FormatDate.
func (b *Bindings) FormatDate(t float64) string { return FormatDate(t) }

// RandInt returns a uniform integer in [min, max].
func (b *Bindings) RandInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + b.rng.Intn(max-min+1)
}

// RandReal returns a uniform float in [min, max).
func (b *Bindings) RandReal(min, max float64) float64 {
	return min + b.rng.Float64()*(max-min)
}

// PersonName generates a random full person name.
func (b *Bindings) PersonName(female bool) string {
	return FullName(b.rng, female)
}

func (b *Bindings) Message(from, msg string) {
	b.sink.Message(from, msg)
}

func (b *Bindings) ImportantMessage(from, msg string) {
	b.sink.ImportantMessage(from, msg)
}

// SpawnShip puts a new ship of the named type into the world and returns a
// handle to it. due is the ship's hyperspace arrival time: a future due (or a
// recent-past one whose cloud hasn't dissipated) also spawns a hyperspace
// cloud carrying the ship; a stale or zero due drops the ship straight into
// space.
func (b *Bindings) SpawnShip(typeName string, due float64) (*tether.Handle, error) {
	st, err := sim.GetShipType(typeName)
	if err != nil {
		return nil, err
	}
	ship := sim.NewShip(st, shipLabel(b.rng))
	b.world.AddBody(ship)

	now := b.world.SimTime()
	if due > 0 && due >= now-hypercloudDuration {
		cloud := sim.NewCloud(ship, due)
		b.world.AddBody(cloud)
	}
	b.logger.Info().
		Str("ship_type", typeName).
		Str("label", ship.Label()).
		Float64("due", due).
		Msg("ship spawned")
	return tether.NewHandle(b.world, ship)
}

// shipLabel generates a registration label like "KL-3427".
func shipLabel(r *rand.Rand) string {
	return fmt.Sprintf("%c%c-%04d", 'A'+r.Intn(26), 'A'+r.Intn(26), r.Intn(10000))
}
