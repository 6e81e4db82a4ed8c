package sim

// Slot is an equipment mount category on a ship.
type Slot int

const (
	SlotCargo Slot = iota
	SlotEngine
	SlotLaser
	SlotMax
)

// Equip identifies an equipment item. EquipNone marks an empty slot position.
type Equip uint8

const (
	EquipNone Equip = iota
	EquipHydrogen
	EquipPreciousMetals
	EquipHyperdriveClass1
	EquipHyperdriveClass2
	EquipPulseLaser
	EquipBeamLaser
)

var equipSlots = map[Equip]Slot{
	EquipHydrogen:         SlotCargo,
	EquipPreciousMetals:   SlotCargo,
	EquipHyperdriveClass1: SlotEngine,
	EquipHyperdriveClass2: SlotEngine,
	EquipPulseLaser:       SlotLaser,
	EquipBeamLaser:        SlotLaser,
}

// SlotOf returns the slot an equipment item mounts into.
func SlotOf(e Equip) Slot { return equipSlots[e] }

// EquipSet is a ship's equipment, a fixed number of positions per slot sized
// from the ship type.
type EquipSet struct {
	slots [SlotMax][]Equip
}

func NewEquipSet(t *ShipType) *EquipSet {
	var s EquipSet
	for i := Slot(0); i < SlotMax; i++ {
		s.slots[i] = make([]Equip, t.SlotCapacity[i])
	}
	return &s
}

func (s *EquipSet) SlotSize(slot Slot) int { return len(s.slots[slot]) }

// First returns the item in the first position of slot, or EquipNone for
// empty or zero-sized slots.
func (s *EquipSet) First(slot Slot) Equip {
	if len(s.slots[slot]) == 0 {
		return EquipNone
	}
	return s.slots[slot][0]
}

func (s *EquipSet) Get(slot Slot, idx int) Equip { return s.slots[slot][idx] }

func (s *EquipSet) Set(slot Slot, idx int, e Equip) { s.slots[slot][idx] = e }

// Add places num copies of e into free positions of its slot. Returns false
// if fewer than num positions were free; partial placement is kept.
func (s *EquipSet) Add(e Equip, num int) bool {
	slot := SlotOf(e)
	done := 0
	for i := range s.slots[slot] {
		if done == num {
			break
		}
		if s.slots[slot][i] == EquipNone {
			s.slots[slot][i] = e
			done++
		}
	}
	return done == num
}

// Remove clears up to num copies of e and returns how many were removed.
func (s *EquipSet) Remove(e Equip, num int) int {
	slot := SlotOf(e)
	done := 0
	for i := range s.slots[slot] {
		if done == num {
			break
		}
		if s.slots[slot][i] == e {
			s.slots[slot][i] = EquipNone
			done++
		}
	}
	return done
}

func (s *EquipSet) Count(slot Slot, e Equip) int {
	n := 0
	for _, got := range s.slots[slot] {
		if got == e {
			n++
		}
	}
	return n
}

func (s *EquipSet) FreeSpace(slot Slot) int {
	return s.Count(slot, EquipNone)
}
