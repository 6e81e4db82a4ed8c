// Package identity maps live entities to small integer identifiers that are
// stable for the duration of one persistence pass. The ids are what entity
// references look like inside a persisted save; they carry no meaning outside
// the pass (or the matching load pass) that produced them.
package identity

import (
	"github.com/rotisserie/eris"

	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

var ErrUnknownID = eris.New("id was not assigned in this session")

// Registry is the per-pass bidirectional entity/id table. Create a fresh one
// at the start of every encode pass and every load pass; it must not be shared
// between concurrent passes (the design assumes at most one in flight).
type Registry struct {
	ids      map[types.EntityID]int
	entities []*sim.Entity
}

func NewRegistry() *Registry {
	return &Registry{ids: map[types.EntityID]int{}}
}

// LookupID returns the id already assigned to e in this pass, or assigns the
// next unused one. Referentially stable: the same entity always yields the
// same id within a pass.
func (r *Registry) LookupID(e *sim.Entity) int {
	if id, ok := r.ids[e.ID()]; ok {
		return id
	}
	id := len(r.entities)
	r.ids[e.ID()] = id
	r.entities = append(r.entities, e)
	return id
}

// LookupEntity resolves an id assigned (or bound) earlier in this pass. Ids
// never assigned in this pass fail with ErrUnknownID; whether the returned
// entity is still live is the caller's concern.
func (r *Registry) LookupEntity(id int) (*sim.Entity, error) {
	if id < 0 || id >= len(r.entities) || r.entities[id] == nil {
		return nil, eris.Wrapf(ErrUnknownID, "id %d", id)
	}
	return r.entities[id], nil
}

// Bind records that id refers to e, for load passes where entities are
// re-instantiated out of order. Gaps are fine; they stay unknown until bound.
func (r *Registry) Bind(id int, e *sim.Entity) {
	if id < 0 {
		return
	}
	for len(r.entities) <= id {
		r.entities = append(r.entities, nil)
	}
	r.entities[id] = e
	r.ids[e.ID()] = id
}

// IndexWorld pre-assigns ids to every live entity in the world's enumeration
// order. Save passes use this so id assignment does not depend on the order
// values happen to be encoded in.
func (r *Registry) IndexWorld(w *sim.World) {
	for _, e := range w.LiveEntities() {
		r.LookupID(e)
	}
}

// Len reports how many ids this pass has assigned or bound.
func (r *Registry) Len() int { return len(r.entities) }
