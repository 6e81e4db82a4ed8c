package sim

import (
	"math/rand"
	"sort"

	"github.com/rotisserie/eris"
)

type Thruster int

const (
	ThrusterReverse Thruster = iota
	ThrusterForward
	ThrusterUp
	ThrusterDown
	ThrusterLeft
	ThrusterRight
	ThrusterMax
)

const (
	GunFront = iota
	GunRear
	GunmountMax
)

type GunMount struct {
	Pos [3]float32
	Dir [3]float32
}

// ShipType is the static definition of a ship class. Definitions are
// data-only; live ships reference their type and never mutate it.
type ShipType struct {
	Name         string
	Model        string
	LinThrust    [ThrusterMax]float32
	AngThrust    float32
	GunMounts    [GunmountMax]GunMount
	SlotCapacity [SlotMax]int
	Capacity     int // tonnes
	HullMass     int
	BasePrice    int
}

const (
	ShipLadybird          = "ladybird_starfighter"
	ShipSiriusInterdictor = "sirius_interdictor"
	ShipMissileGuided     = "missile_guided"
	ShipMissileNaval      = "missile_naval"
	ShipMissileSmart      = "missile_smart"
	ShipMissileUnguided   = "missile_unguided"
)

var shipTypes = map[string]*ShipType{
	ShipLadybird: {
		Name:      "Ladybird Starfighter",
		Model:     "ladybird",
		LinThrust: [ThrusterMax]float32{-1e7, 2.4e7, 6e6, 6e6, 6e6, 6e6},
		AngThrust: 1.6e7,
		GunMounts: [GunmountMax]GunMount{
			{Pos: [3]float32{0, -0.5, 0}, Dir: [3]float32{0, 0, -1}},
			{Pos: [3]float32{0, 0, 0}, Dir: [3]float32{0, 0, 1}},
		},
		SlotCapacity: [SlotMax]int{SlotCargo: 60, SlotEngine: 1, SlotLaser: 2},
		Capacity:     60,
		HullMass:     40,
		BasePrice:    8700000,
	},
	ShipSiriusInterdictor: {
		Name:      "Sirius Interdictor",
		Model:     "interdictor",
		LinThrust: [ThrusterMax]float32{-3e7, 1e8, 3e7, 3e7, 3e7, 3e7},
		AngThrust: 9e7,
		GunMounts: [GunmountMax]GunMount{
			{Pos: [3]float32{0, 0.6, -4.4}, Dir: [3]float32{0, 0, -1}},
			{Pos: [3]float32{0, 0, 4.4}, Dir: [3]float32{0, 0, 1}},
		},
		SlotCapacity: [SlotMax]int{SlotCargo: 90, SlotEngine: 1, SlotLaser: 2},
		Capacity:     90,
		HullMass:     30,
		BasePrice:    15500000,
	},
	ShipMissileGuided: {
		Name:      "Guided Missile",
		Model:     "missile",
		LinThrust: [ThrusterMax]float32{0, 4e6, 0, 0, 0, 0},
		AngThrust: 1e5,
		HullMass:  1,
	},
	ShipMissileNaval: {
		Name:      "Naval Missile",
		Model:     "missile",
		LinThrust: [ThrusterMax]float32{0, 6e6, 0, 0, 0, 0},
		AngThrust: 2e5,
		HullMass:  1,
	},
	ShipMissileSmart: {
		Name:      "Smart Missile",
		Model:     "missile",
		LinThrust: [ThrusterMax]float32{0, 5e6, 0, 0, 0, 0},
		AngThrust: 1.5e5,
		HullMass:  1,
	},
	ShipMissileUnguided: {
		Name:      "Unguided Rocket",
		Model:     "missile",
		LinThrust: [ThrusterMax]float32{0, 4e6, 0, 0, 0, 0},
		HullMass:  1,
	},
}

// GetShipType resolves a ship type by its registry name.
func GetShipType(name string) (*ShipType, error) {
	t, ok := shipTypes[name]
	if !ok {
		return nil, eris.Wrap(ErrUnknownShipType, name)
	}
	return t, nil
}

// RandomShipType picks a uniformly random type. Selection is deterministic
// for a seeded rng because candidates are sorted by name.
func RandomShipType(r *rand.Rand) *ShipType {
	names := make([]string, 0, len(shipTypes))
	for name := range shipTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return shipTypes[names[r.Intn(len(names))]]
}
