// Package save persists the tagged payloads of one save pass and reads them
// back for a load pass. Storage is dumb string storage keyed by slot and value
// name; Manager owns the pass semantics (one codec session per pass, explicit
// unresolved-reference reporting on load).
package save

import "context"

// Manifest describes one written save slot.
type Manifest struct {
	// Session is the uuid of the encode pass that wrote the slot. Entity ids
	// inside the slot's payloads are only meaningful relative to that pass.
	Session string `json:"session"`
	// SavedAt is the game time of the save.
	SavedAt float64 `json:"saved_at"`
	// Keys lists every value written, in the order it was encoded.
	Keys []string `json:"keys"`
}

// Storage is the persisted-save store. Implementations must apply
// SetPayloads plus the manifest write of one pass atomically.
type Storage interface {
	SetPayloads(ctx context.Context, slot string, payloads map[string]string, m Manifest) error
	GetPayload(ctx context.Context, slot, key string) (string, error)
	GetManifest(ctx context.Context, slot string) (Manifest, error)
	DeleteSlot(ctx context.Context, slot string) error
	Close(ctx context.Context) error
}
