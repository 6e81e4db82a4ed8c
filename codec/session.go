package codec

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/starforge/tether/identity"
	"github.com/starforge/tether/sim"
)

// Session is the context one save or load pass threads through every encode
// and decode: the world being referenced, a fresh identity registry, and a
// pass id for logging and save manifests. Sessions are cheap; never reuse one
// across passes, since entity ids are only meaningful within the pass that
// assigned them.
type Session struct {
	ID       uuid.UUID
	World    *sim.World
	Registry *identity.Registry
	Logger   zerolog.Logger
}

func NewSession(w *sim.World, logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:       id,
		World:    w,
		Registry: identity.NewRegistry(),
		Logger:   logger.With().Str("session_id", id.String()).Logger(),
	}
}
