// Package log constructs the structured loggers the rest of the module
// threads through world, session, and save operations.
package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/starforge/tether/types"
)

// New builds a logger writing to w at the given level name. Unparseable level
// names fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Entity loads an entity's identifying fields into a log event.
func Entity(ev *zerolog.Event, id types.EntityID, kind types.Kind, label string) *zerolog.Event {
	return ev.
		Uint64("entity_id", uint64(id)).
		Str("kind", kind.String()).
		Str("label", label)
}

// Payload loads a persisted payload's identifying fields into a log event.
func Payload(ev *zerolog.Event, tag string, key string) *zerolog.Event {
	return ev.Str("tag", tag).Str("key", key)
}
