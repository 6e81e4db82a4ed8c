package sim

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/starforge/tether/log"
	"github.com/starforge/tether/types"
)

// World is the exclusive owner of all live entities. Everything here runs on
// the single simulation thread: adds, removes, and deletion notifications are
// synchronous and never interleave with other mutation of the same entity.
type World struct {
	nextID   types.EntityID
	entities map[types.EntityID]*Entity

	// order preserves insertion order. It fixes the enumeration order that
	// the identity registry uses when assigning persistence ids.
	order []*Entity

	notifier *deletionNotifier
	now      float64
	system   types.SysLoc
	player   *Entity
	logger   zerolog.Logger
}

func NewWorld(system types.SysLoc, logger zerolog.Logger) *World {
	return &World{
		entities: map[types.EntityID]*Entity{},
		notifier: newDeletionNotifier(),
		system:   system,
		logger:   logger.With().Str("system", system.String()).Logger(),
	}
}

// AddBody takes ownership of e and assigns its live instance id.
func (w *World) AddBody(e *Entity) types.EntityID {
	w.nextID++
	e.id = w.nextID
	w.entities[e.id] = e
	w.order = append(w.order, e)
	log.Entity(w.logger.Debug(), e.id, e.kind, e.label).Msg("entity added")
	return e.id
}

// RemoveBody destroys e: deletion observers are notified first, synchronously,
// then the entity is marked destroyed and unlinked from the world. Dock links
// pointing at e are cleared so no live entity retains a reference to it.
func (w *World) RemoveBody(e *Entity) error {
	if e == nil || e.destroyed || w.entities[e.id] != e {
		return eris.Wrap(ErrInvalidEntity, "remove body")
	}
	w.notifier.notifyDestruction(e)
	e.destroyed = true
	delete(w.entities, e.id)
	for i, live := range w.order {
		if live == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for _, live := range w.order {
		if live.dockedWith == e {
			live.dockedWith = nil
		}
	}
	if w.player == e {
		w.player = nil
	}
	log.Entity(w.logger.Debug(), e.id, e.kind, e.label).Msg("entity removed")
	return nil
}

func (w *World) EntityExists(id types.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Entity resolves a live instance id. ok is false for destroyed or unknown ids.
func (w *World) Entity(id types.EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// LiveEntities returns the live entities in insertion order. The slice is a
// copy; callers may destroy entities while iterating it.
func (w *World) LiveEntities() []*Entity {
	out := make([]*Entity, len(w.order))
	copy(out, w.order)
	return out
}

func (w *World) SimTime() float64 { return w.now }

func (w *World) AdvanceTime(dt float64) { w.now += dt }

func (w *World) CurrentSystem() types.SysLoc { return w.system }

func (w *World) Player() *Entity { return w.player }

func (w *World) SetPlayer(e *Entity) { w.player = e }

func (w *World) Logger() zerolog.Logger { return w.logger }

// Subscribe registers fn to run when e is destroyed. Fails with
// ErrInvalidEntity if e is already destroyed.
func (w *World) Subscribe(e *Entity, fn func()) (Token, error) {
	return w.notifier.subscribe(e, fn)
}

// Unsubscribe is idempotent and safe after the entity has been destroyed.
func (w *World) Unsubscribe(tok Token) {
	w.notifier.unsubscribe(tok)
}
