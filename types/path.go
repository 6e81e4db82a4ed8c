package types

import "fmt"

// SysLoc addresses a star system by sector coordinates plus the system's index
// within that sector. It is a value type: it references addressable universe
// data, not a live entity, so it stays valid across sessions without any
// liveness bookkeeping.
type SysLoc struct {
	SectorX int `json:"sector_x"`
	SectorY int `json:"sector_y"`
	System  int `json:"system"`
}

func (l SysLoc) String() string {
	return fmt.Sprintf("(%d,%d:%d)", l.SectorX, l.SectorY, l.System)
}

// BodyPath addresses a body inside a system by walking the system's body tree:
// Path holds the child index taken at each level, root first. Like SysLoc it is
// an immutable value; the body it names may or may not currently have a live
// entity instantiated for it.
type BodyPath struct {
	SysLoc
	Path []int `json:"path"`
}

func (p BodyPath) Equal(o BodyPath) bool {
	if p.SysLoc != o.SysLoc || len(p.Path) != len(o.Path) {
		return false
	}
	for i := range p.Path {
		if p.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

func (p BodyPath) String() string {
	s := p.SysLoc.String()
	for _, idx := range p.Path {
		s += fmt.Sprintf("/%d", idx)
	}
	return s
}
