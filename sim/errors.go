package sim

import "github.com/rotisserie/eris"

var (
	ErrInvalidEntity   = eris.New("entity is destroyed or not part of this world")
	ErrUnknownShipType = eris.New("unknown ship type")
)
