package tether

import (
	"github.com/rotisserie/eris"

	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

// ErrDetachedHandle is returned by handle operations that refuse to run after
// the wrapped entity was destroyed. Expected and recoverable; read-style
// operations return a neutral value instead (documented per operation).
var ErrDetachedHandle = eris.New("handle is detached from its entity")

// Handle is the single safe way external code touches a simulation entity. It
// never owns the entity: the world can destroy the entity at any moment, at
// which point the handle detaches via the deletion notification and every
// subsequent operation observes the detached state. A handle's target is
// always either a live entity or the detached sentinel, never a dangling
// reference.
type Handle struct {
	world      *sim.World
	entity     *sim.Entity
	token      sim.Token
	subscribed bool
}

// NewHandle wraps e and subscribes to its deletion notification. Fails with
// sim.ErrInvalidEntity if e is already destroyed or not owned by w.
func NewHandle(w *sim.World, e *sim.Entity) (*Handle, error) {
	h := &Handle{world: w, entity: e}
	tok, err := w.Subscribe(e, h.onDelete)
	if err != nil {
		return nil, err
	}
	h.token = tok
	h.subscribed = true
	return h, nil
}

// onDelete runs exactly once, synchronously, when the wrapped entity begins
// destruction. The notifier has already dropped the subscription; Release is
// still called so the handle's own bookkeeping can't go stale.
func (h *Handle) onDelete() {
	h.entity = nil
	h.Release()
}

// Release drops the deletion subscription. Idempotent and unconditional: call
// it when the handle's owner discards the handle, detached or not.
func (h *Handle) Release() {
	if h.subscribed {
		h.world.Unsubscribe(h.token)
		h.subscribed = false
	}
}

// IsLive reports whether the handle still points at a live entity.
func (h *Handle) IsLive() bool {
	return h.entity != nil && !h.entity.Destroyed()
}

// IsBody reports whether the entity is body-like. Neutral false when detached.
func (h *Handle) IsBody() bool {
	return h.IsLive() && h.entity.IsBody()
}

// Kind returns the entity kind. Neutral zero kind and false when detached.
func (h *Handle) Kind() (types.Kind, bool) {
	if !h.IsLive() {
		return 0, false
	}
	return h.entity.Kind(), true
}

// Label returns the entity's label. Neutral "" when detached or for entities
// that aren't bodies.
func (h *Handle) Label() string {
	if !h.IsBody() {
		return ""
	}
	return h.entity.Label()
}

// Money returns a ship's balance in credits. Neutral 0 when detached or for
// non-ships.
func (h *Handle) Money() float64 {
	if !h.IsLive() || h.entity.Kind() != types.KindShip {
		return 0
	}
	return 0.01 * float64(h.entity.Money())
}

// SetMoney sets a ship's balance in credits. Fails with ErrDetachedHandle
// when detached; a no-op for live non-ships.
func (h *Handle) SetMoney(credits float64) error {
	if !h.IsLive() {
		return eris.Wrap(ErrDetachedHandle, "set money")
	}
	if h.entity.Kind() == types.KindShip {
		h.entity.SetMoney(int64(credits * 100.0))
	}
	return nil
}

// DockedWith returns a new handle for the station this ship is docked with.
// Fails with ErrDetachedHandle when detached; (nil, nil) for entities that are
// not docked ships. The returned handle carries its own independent
// subscription, not the parent's.
func (h *Handle) DockedWith() (*Handle, error) {
	if !h.IsLive() {
		return nil, eris.Wrap(ErrDetachedHandle, "docked with")
	}
	if h.entity.Kind() != types.KindShip || h.entity.DockedWith() == nil {
		return nil, nil
	}
	return NewHandle(h.world, h.entity.DockedWith())
}

// BodyPath returns the addressable path of the wrapped entity. Neutral
// zero-path and false when detached or when the entity has no path.
func (h *Handle) BodyPath() (types.BodyPath, bool) {
	if !h.IsBody() {
		return types.BodyPath{}, false
	}
	return h.entity.Path()
}

// AddAdvert posts to a station's bulletin board. Fails with ErrDetachedHandle
// when detached; a no-op for live non-stations.
func (h *Handle) AddAdvert(module string, ref int, description string) error {
	if !h.IsLive() {
		return eris.Wrap(ErrDetachedHandle, "add advert")
	}
	if h.entity.Kind() == types.KindStation {
		h.entity.AddAdvert(sim.Advert{Module: module, Ref: ref, Description: description})
	}
	return nil
}

// RemoveAdvert withdraws matching postings from a station's bulletin board.
// Fails with ErrDetachedHandle when detached; a no-op for live non-stations.
func (h *Handle) RemoveAdvert(module string, ref int) error {
	if !h.IsLive() {
		return eris.Wrap(ErrDetachedHandle, "remove advert")
	}
	if h.entity.Kind() == types.KindStation {
		h.entity.RemoveAdvert(module, ref)
	}
	return nil
}
