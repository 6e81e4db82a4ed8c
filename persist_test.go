package tether_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/starforge/tether"
	"github.com/starforge/tether/codec"
	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

func newTestSession(t *testing.T, w *sim.World) *codec.Session {
	t.Helper()
	return codec.NewSession(w, zerolog.Nop())
}

func TestEncodeEntityRefUsesRegistryID(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	c := tether.NewCodec()
	sess := newTestSession(t, w)
	payload, err := c.Encode(sess, h)
	assert.NilError(t, err)
	assert.Equal(t, "EntityRef\n0", payload)

	// Encoding the same entity twice in one pass yields the same id.
	payload2, err := c.Encode(sess, h)
	assert.NilError(t, err)
	assert.Equal(t, payload, payload2)
}

func TestEntityRefRoundTripPreservesIdentity(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	c := tether.NewCodec()
	sess := newTestSession(t, w)
	payload, err := c.Encode(sess, h)
	assert.NilError(t, err)

	v, err := c.Decode(sess, payload)
	assert.NilError(t, err)
	got, ok := v.(*tether.Handle)
	require.True(t, ok)
	assert.Check(t, got != h)
	assert.Check(t, got.IsLive())
	assert.Equal(t, "AB-1234", got.Label())

	// Same entity identity: destroying it detaches both handles.
	assert.NilError(t, w.RemoveBody(ship))
	assert.Check(t, !h.IsLive())
	assert.Check(t, !got.IsLive())
}

func TestEncodeDetachedHandleFails(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)
	assert.NilError(t, w.RemoveBody(ship))

	c := tether.NewCodec()
	_, err = c.Encode(newTestSession(t, w), h)
	assert.ErrorIs(t, err, tether.ErrDetachedHandle)
}

func TestDecodeUnassignedEntityRefFails(t *testing.T) {
	w := newTestWorld(t)
	c := tether.NewCodec()

	_, err := c.Decode(newTestSession(t, w), "EntityRef\n7")
	assert.ErrorIs(t, err, codec.ErrUnresolvedReference)
}

func TestDecodeNonNumericEntityRefFails(t *testing.T) {
	w := newTestWorld(t)
	c := tether.NewCodec()

	_, err := c.Decode(newTestSession(t, w), "EntityRef\nnot-a-number")
	assert.ErrorIs(t, err, codec.ErrMalformedPayload)
}

// The end-to-end deletion scenario: encode a ship, destroy it, and observe
// that its once-valid id now decodes to an unresolved reference - "id known
// but entity gone" is distinct from "id never known".
func TestDestroyedEntityRefIsUnresolvedNotUnknown(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	c := tether.NewCodec()
	sess := newTestSession(t, w)
	payload, err := c.Encode(sess, h)
	assert.NilError(t, err)
	assert.Equal(t, "EntityRef\n0", payload)

	assert.NilError(t, w.RemoveBody(ship))
	assert.Check(t, !h.IsLive())

	_, err = c.Decode(sess, "EntityRef\n0")
	assert.ErrorIs(t, err, codec.ErrUnresolvedReference)
}

func TestSysLocRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	c := tether.NewCodec()
	sess := newTestSession(t, w)

	loc := types.SysLoc{SectorX: -4, SectorY: 12, System: 3}
	payload, err := c.Encode(sess, loc)
	assert.NilError(t, err)

	v, err := c.Decode(sess, payload)
	assert.NilError(t, err)
	assert.Equal(t, loc, v)
}

func TestBodyPathRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	c := tether.NewCodec()
	sess := newTestSession(t, w)

	path := types.BodyPath{
		SysLoc: types.SysLoc{SectorX: 1, SectorY: -9, System: 0},
		Path:   []int{0, 2, 2, 1},
	}
	payload, err := c.Encode(sess, path)
	assert.NilError(t, err)

	v, err := c.Decode(sess, payload)
	assert.NilError(t, err)
	got, ok := v.(types.BodyPath)
	require.True(t, ok)
	assert.Check(t, got.Equal(path))
}

func TestMalformedHierarchicalBodiesFail(t *testing.T) {
	w := newTestWorld(t)
	c := tether.NewCodec()
	sess := newTestSession(t, w)

	_, err := c.Decode(sess, "SysLoc\n{broken")
	assert.ErrorIs(t, err, codec.ErrMalformedPayload)
	_, err = c.Decode(sess, "BodyPath\n[1,2,3]")
	assert.ErrorIs(t, err, codec.ErrMalformedPayload)
}

func TestBuiltinTags(t *testing.T) {
	c := tether.NewCodec()
	assert.DeepEqual(t, []string{"BodyPath", "EntityRef", "SysLoc"}, c.Tags())
}

func TestLoadPassResolvesViaBoundEntities(t *testing.T) {
	// Simulate a load: the payload references id 2, the world re-instantiates
	// entities in its own order, and the loader binds ids as they appear.
	w := newTestWorld(t)
	c := tether.NewCodec()
	sess := newTestSession(t, w)

	_, err := c.Decode(sess, "EntityRef\n2")
	assert.ErrorIs(t, err, codec.ErrUnresolvedReference)

	ship := newTestShip(t, w, "EF-0001")
	sess.Registry.Bind(2, ship)

	v, err := c.Decode(sess, "EntityRef\n2")
	assert.NilError(t, err)
	h := v.(*tether.Handle)
	assert.Check(t, h.IsLive())
	assert.Equal(t, "EF-0001", h.Label())
}
