package codec

import "github.com/rotisserie/eris"

var (
	// ErrUnsupportedKind means no codec is registered for the value's type
	// (encode) or the payload's tag (decode).
	ErrUnsupportedKind = eris.New("no codec registered for kind")

	// ErrMalformedPayload means the payload has no tag separator or its body
	// could not be parsed by the matching decoder. Fatal to that one decode
	// call only; later decodes are unaffected.
	ErrMalformedPayload = eris.New("malformed payload")

	// ErrUnresolvedReference means an entity reference names an id that is
	// unknown to this session or whose entity is no longer live. Recoverable:
	// callers with load-ordering knowledge may bind the entity and retry.
	ErrUnresolvedReference = eris.New("entity reference cannot be resolved in this session")

	ErrTagRegistered  = eris.New("tag already registered")
	ErrTypeRegistered = eris.New("type already registered")
	ErrInvalidTag     = eris.New("tag must be non-empty and contain no newline")
)

// IsUnresolved reports whether err is an unresolved entity reference, the one
// decode failure worth retrying after more of the world has been rebuilt.
func IsUnresolved(err error) bool {
	return eris.Is(err, ErrUnresolvedReference)
}
