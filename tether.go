// Package tether lets embedded script code hold deletion-safe references to
// entities owned by a separately-mutated simulation, and carries those
// references across save/load through a tagged persistence codec. The three
// built-in persisted kinds are the live-entity reference (EntityRef), the
// hierarchical body path (BodyPath), and the system location (SysLoc).
package tether

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"github.com/starforge/tether/codec"
	"github.com/starforge/tether/types"
)

// Persistence tags for the built-in kinds. Tag strings are part of the save
// format and must never change.
const (
	TagEntityRef = "EntityRef"
	TagSysLoc    = "SysLoc"
	TagBodyPath  = "BodyPath"
)

// NewCodec returns a codec with the built-in kinds registered. Callers extend
// it with codec.Register for their own kinds; built-in tags stay reserved.
func NewCodec() *codec.Codec {
	c := codec.New()
	mustRegister(codec.Register(c, TagEntityRef, encodeEntityRef, decodeEntityRef))
	mustRegister(codec.Register(c, TagSysLoc, encodeSysLoc, decodeSysLoc))
	mustRegister(codec.Register(c, TagBodyPath, encodeBodyPath, decodeBodyPath))
	return c
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// encodeEntityRef writes the session-scoped registry id of the wrapped entity
// as decimal text. Encoding a detached handle is refused: a reference to a
// destroyed entity has no meaning in a save.
func encodeEntityRef(sess *codec.Session, h *Handle) ([]byte, error) {
	if !h.IsLive() {
		return nil, eris.Wrap(ErrDetachedHandle, "encode entity ref")
	}
	id := sess.Registry.LookupID(h.entity)
	return strconv.AppendInt(nil, int64(id), 10), nil
}

// decodeEntityRef resolves the embedded registry id and wraps the entity in a
// fresh handle. An id that was never assigned in this session, or whose entity
// is not currently live, fails with ErrUnresolvedReference so the caller can
// retry after dependent entities are loaded; it never fabricates a detached
// handle.
func decodeEntityRef(sess *codec.Session, body []byte) (*Handle, error) {
	id, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, eris.Wrap(codec.ErrMalformedPayload, "entity ref body is not a decimal id")
	}
	e, err := sess.Registry.LookupEntity(id)
	if err != nil {
		return nil, eris.Wrapf(codec.ErrUnresolvedReference, "id %d was never assigned", id)
	}
	if e.Destroyed() || !sess.World.EntityExists(e.ID()) {
		return nil, eris.Wrapf(codec.ErrUnresolvedReference, "id %d names a destroyed entity", id)
	}
	return NewHandle(sess.World, e)
}

func encodeSysLoc(_ *codec.Session, loc types.SysLoc) ([]byte, error) {
	bz, err := json.Marshal(loc)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

func decodeSysLoc(_ *codec.Session, body []byte) (types.SysLoc, error) {
	var loc types.SysLoc
	if err := json.Unmarshal(body, &loc); err != nil {
		return loc, eris.Wrap(codec.ErrMalformedPayload, "sys loc: "+err.Error())
	}
	return loc, nil
}

func encodeBodyPath(_ *codec.Session, path types.BodyPath) ([]byte, error) {
	bz, err := json.Marshal(path)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

func decodeBodyPath(_ *codec.Session, body []byte) (types.BodyPath, error) {
	var path types.BodyPath
	if err := json.Unmarshal(body, &path); err != nil {
		return path, eris.Wrap(codec.ErrMalformedPayload, "body path: "+err.Error())
	}
	return path, nil
}
