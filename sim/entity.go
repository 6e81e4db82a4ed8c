package sim

import (
	"github.com/starforge/tether/types"
)

// Advert is one bulletin-board posting on a station. Ref identifies the
// script-side callback that owns the posting.
type Advert struct {
	Module      string `json:"module"`
	Ref         int    `json:"ref"`
	Description string `json:"description"`
}

// Entity is a simulation-owned object. The world container is its exclusive
// owner: handles and subscriptions never own an entity, and once the world
// removes it the destroyed flag stays set forever.
type Entity struct {
	id    types.EntityID
	kind  types.Kind
	label string

	// money is stored in hundredths of a credit. Ships only.
	money      int64
	dockedWith *Entity
	shipType   *ShipType
	equip      *EquipSet

	// path is set for entities that correspond to addressable universe data.
	path    types.BodyPath
	hasPath bool

	// adverts is the station bulletin board.
	adverts []Advert

	// cloud bookkeeping: the ship the cloud delivers and when it arrives.
	payload *Entity
	arrival float64

	destroyed bool
}

// NewBody creates a plain body entity addressed by the given path.
func NewBody(label string, path types.BodyPath) *Entity {
	return &Entity{kind: types.KindBody, label: label, path: path, hasPath: true}
}

// NewShip creates a ship of the given type. The equipment set starts empty
// with slot sizes taken from the type.
func NewShip(t *ShipType, label string) *Entity {
	e := &Entity{kind: types.KindShip, label: label, shipType: t}
	e.equip = NewEquipSet(t)
	return e
}

// NewStation creates a station entity addressed by the given path.
func NewStation(label string, path types.BodyPath) *Entity {
	return &Entity{kind: types.KindStation, label: label, path: path, hasPath: true}
}

// NewCloud creates a hyperspace cloud that delivers ship at the given arrival
// time.
func NewCloud(ship *Entity, arrival float64) *Entity {
	return &Entity{kind: types.KindCloud, label: "hyperspace cloud", payload: ship, arrival: arrival}
}

func (e *Entity) ID() types.EntityID { return e.id }
func (e *Entity) Kind() types.Kind   { return e.kind }
func (e *Entity) Label() string      { return e.label }
func (e *Entity) Destroyed() bool    { return e.destroyed }

// IsBody reports whether the entity is addressable body-like data (bodies,
// ships, stations). Clouds are transient and not bodies.
func (e *Entity) IsBody() bool {
	return e.kind == types.KindBody || e.kind == types.KindShip || e.kind == types.KindStation
}

func (e *Entity) Money() int64     { return e.money }
func (e *Entity) SetMoney(m int64) { e.money = m }

func (e *Entity) ShipType() *ShipType { return e.shipType }

func (e *Entity) Equipment() *EquipSet { return e.equip }

func (e *Entity) DockedWith() *Entity { return e.dockedWith }

func (e *Entity) SetDockedWith(station *Entity) { e.dockedWith = station }

// Path returns the body path for addressable entities. ok is false for
// entities with no path (clouds, undocked spawned ships).
func (e *Entity) Path() (types.BodyPath, bool) {
	return e.path, e.hasPath
}

func (e *Entity) SetPath(p types.BodyPath) {
	e.path = p
	e.hasPath = true
}

// CloudPayload returns the ship a hyperspace cloud delivers, or nil.
func (e *Entity) CloudPayload() *Entity { return e.payload }

// Arrival returns the cloud's arrival time. Zero for non-clouds.
func (e *Entity) Arrival() float64 { return e.arrival }

func (e *Entity) AddAdvert(a Advert) {
	e.adverts = append(e.adverts, a)
}

// RemoveAdvert drops every posting matching module and ref.
func (e *Entity) RemoveAdvert(module string, ref int) {
	kept := e.adverts[:0]
	for _, a := range e.adverts {
		if a.Module == module && a.Ref == ref {
			continue
		}
		kept = append(kept, a)
	}
	e.adverts = kept
}

func (e *Entity) Adverts() []Advert {
	out := make([]Advert, len(e.adverts))
	copy(out, e.adverts)
	return out
}
