package tether_test

import (
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/starforge/tether"
	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

func newTestWorld(t *testing.T) *sim.World {
	t.Helper()
	return sim.NewWorld(types.SysLoc{SectorX: -1, SectorY: 2, System: 3}, zerolog.Nop())
}

func newTestShip(t *testing.T, w *sim.World, label string) *sim.Entity {
	t.Helper()
	st, err := sim.GetShipType(sim.ShipLadybird)
	assert.NilError(t, err)
	ship := sim.NewShip(st, label)
	w.AddBody(ship)
	return ship
}

func TestHandleIsLiveAfterConstruction(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")

	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)
	assert.Check(t, h.IsLive())
	assert.Check(t, h.IsBody())
	assert.Equal(t, "AB-1234", h.Label())
}

func TestNewHandleOnDestroyedEntityFails(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	assert.NilError(t, w.RemoveBody(ship))

	_, err := tether.NewHandle(w, ship)
	assert.ErrorIs(t, err, sim.ErrInvalidEntity)
}

func TestHandleDetachesWhenEntityIsDestroyed(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	assert.NilError(t, w.RemoveBody(ship))
	assert.Check(t, !h.IsLive())

	// Detachment never reverts.
	other := newTestShip(t, w, "CD-5678")
	_ = other
	assert.Check(t, !h.IsLive())
}

func TestAllHandlesOverOneEntityDetachTogether(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")

	handles := make([]*tether.Handle, 4)
	for i := range handles {
		h, err := tether.NewHandle(w, ship)
		assert.NilError(t, err)
		handles[i] = h
	}

	// No handle observes detachment before the notification fires.
	for _, h := range handles {
		assert.Check(t, h.IsLive())
	}
	assert.NilError(t, w.RemoveBody(ship))
	for _, h := range handles {
		assert.Check(t, !h.IsLive())
	}

	// Releasing one handle after the fact does not error.
	handles[0].Release()
}

func TestDetachedReadsReturnNeutralValues(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	ship.SetMoney(250000)
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)
	assert.Equal(t, 2500.0, h.Money())

	assert.NilError(t, w.RemoveBody(ship))

	assert.Equal(t, "", h.Label())
	assert.Equal(t, 0.0, h.Money())
	assert.Check(t, !h.IsBody())
	_, ok := h.Kind()
	assert.Check(t, !ok)
	_, ok = h.BodyPath()
	assert.Check(t, !ok)
}

func TestDetachedMutationsFailExplicitly(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)
	assert.NilError(t, w.RemoveBody(ship))

	assert.ErrorIs(t, h.SetMoney(100), tether.ErrDetachedHandle)
	assert.ErrorIs(t, h.AddAdvert("taxi", 1, "cheap rides"), tether.ErrDetachedHandle)
	assert.ErrorIs(t, h.RemoveAdvert("taxi", 1), tether.ErrDetachedHandle)
	_, err = h.DockedWith()
	assert.ErrorIs(t, err, tether.ErrDetachedHandle)
}

func TestSetMoneyIsANoOpForNonShips(t *testing.T) {
	w := newTestWorld(t)
	station := sim.NewStation("Gates Spaceport", types.BodyPath{Path: []int{2}})
	w.AddBody(station)
	h, err := tether.NewHandle(w, station)
	assert.NilError(t, err)

	assert.NilError(t, h.SetMoney(500))
	assert.Equal(t, 0.0, h.Money())
}

func TestDockedWithReturnsIndependentHandle(t *testing.T) {
	w := newTestWorld(t)
	station := sim.NewStation("Gates Spaceport", types.BodyPath{Path: []int{2}})
	w.AddBody(station)
	ship := newTestShip(t, w, "AB-1234")
	ship.SetDockedWith(station)

	shipHandle, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)
	stationHandle, err := shipHandle.DockedWith()
	assert.NilError(t, err)
	assert.Equal(t, "Gates Spaceport", stationHandle.Label())

	// Destroying the ship detaches only the ship's handle: the derived handle
	// holds its own subscription on the station.
	assert.NilError(t, w.RemoveBody(ship))
	assert.Check(t, !shipHandle.IsLive())
	assert.Check(t, stationHandle.IsLive())
}

func TestDockedWithIsNilForUndockedShips(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	docked, err := h.DockedWith()
	assert.NilError(t, err)
	assert.Check(t, docked == nil)
}

func TestReleaseIsIdempotentAndStopsDetachment(t *testing.T) {
	w := newTestWorld(t)
	ship := newTestShip(t, w, "AB-1234")
	h, err := tether.NewHandle(w, ship)
	assert.NilError(t, err)

	h.Release()
	h.Release()

	// A released handle receives no notification, but liveness still reads
	// the entity's destroyed flag, so it can never observe a dangling target.
	assert.NilError(t, w.RemoveBody(ship))
	assert.Check(t, !h.IsLive())
}

func TestStationAdverts(t *testing.T) {
	w := newTestWorld(t)
	station := sim.NewStation("Gates Spaceport", types.BodyPath{Path: []int{2}})
	w.AddBody(station)
	h, err := tether.NewHandle(w, station)
	assert.NilError(t, err)

	assert.NilError(t, h.AddAdvert("taxi", 1, "cheap rides"))
	assert.NilError(t, h.AddAdvert("delivery", 2, "parcel run"))
	assert.Equal(t, 2, len(station.Adverts()))

	assert.NilError(t, h.RemoveAdvert("taxi", 1))
	adverts := station.Adverts()
	assert.Equal(t, 1, len(adverts))
	assert.Equal(t, "delivery", adverts[0].Module)
}

func TestBodyPath(t *testing.T) {
	w := newTestWorld(t)
	path := types.BodyPath{
		SysLoc: w.CurrentSystem(),
		Path:   []int{0, 3, 1},
	}
	planet := sim.NewBody("New Hope", path)
	w.AddBody(planet)
	h, err := tether.NewHandle(w, planet)
	assert.NilError(t, err)

	got, ok := h.BodyPath()
	assert.Check(t, ok)
	assert.Check(t, got.Equal(path))
}
