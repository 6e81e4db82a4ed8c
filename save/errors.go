package save

import "github.com/rotisserie/eris"

var (
	ErrNoManifest = eris.New("save slot has no manifest")
	ErrNoPayload  = eris.New("save slot has no payload for key")
)
