package sim_test

import (
	"testing"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/starforge/tether/sim"
	"github.com/starforge/tether/types"
)

func newTestWorld() *sim.World {
	return sim.NewWorld(types.SysLoc{SectorX: 0, SectorY: 0, System: 0}, zerolog.Nop())
}

func TestObserversAreNotifiedExactlyOnceInSubscriptionOrder(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})
	w.AddBody(e)

	var calls []int
	for i := 0; i < 3; i++ {
		i := i
		_, err := w.Subscribe(e, func() { calls = append(calls, i) })
		assert.NilError(t, err)
	}

	assert.NilError(t, w.RemoveBody(e))
	assert.DeepEqual(t, []int{0, 1, 2}, calls)

	// Removing again must not re-notify.
	err := w.RemoveBody(e)
	assert.ErrorIs(t, err, sim.ErrInvalidEntity)
	assert.Equal(t, 3, len(calls))
}

func TestSubscribeToDestroyedEntityFails(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})
	w.AddBody(e)
	assert.NilError(t, w.RemoveBody(e))

	_, err := w.Subscribe(e, func() {})
	assert.ErrorIs(t, err, sim.ErrInvalidEntity)
}

func TestSubscribeToUnownedEntityFails(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})

	_, err := w.Subscribe(e, func() {})
	assert.ErrorIs(t, err, sim.ErrInvalidEntity)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})
	w.AddBody(e)

	called := false
	tok, err := w.Subscribe(e, func() { called = true })
	assert.NilError(t, err)

	w.Unsubscribe(tok)
	w.Unsubscribe(tok)
	assert.NilError(t, w.RemoveBody(e))
	assert.Check(t, !called)

	// Unsubscribing after destruction must be safe too.
	w.Unsubscribe(tok)
}

func TestObserverMayUnsubscribeItselfDuringCallback(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})
	w.AddBody(e)

	var tok sim.Token
	first := 0
	second := 0
	var err error
	tok, err = w.Subscribe(e, func() {
		first++
		w.Unsubscribe(tok)
	})
	assert.NilError(t, err)
	_, err = w.Subscribe(e, func() { second++ })
	assert.NilError(t, err)

	assert.NilError(t, w.RemoveBody(e))
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestObserverMayUnsubscribeLaterObserverDuringCallback(t *testing.T) {
	w := newTestWorld()
	e := sim.NewBody("planet", types.BodyPath{})
	w.AddBody(e)

	var secondTok sim.Token
	secondCalled := false
	_, err := w.Subscribe(e, func() { w.Unsubscribe(secondTok) })
	assert.NilError(t, err)
	secondTok, err = w.Subscribe(e, func() { secondCalled = true })
	assert.NilError(t, err)

	assert.NilError(t, w.RemoveBody(e))
	assert.Check(t, !secondCalled)
}

func TestNotificationsAreScopedToTheirEntity(t *testing.T) {
	w := newTestWorld()
	a := sim.NewBody("a", types.BodyPath{})
	b := sim.NewBody("b", types.BodyPath{})
	w.AddBody(a)
	w.AddBody(b)

	aCalls, bCalls := 0, 0
	_, err := w.Subscribe(a, func() { aCalls++ })
	assert.NilError(t, err)
	_, err = w.Subscribe(b, func() { bCalls++ })
	assert.NilError(t, err)

	assert.NilError(t, w.RemoveBody(a))
	assert.Equal(t, 1, aCalls)
	assert.Equal(t, 0, bCalls)
}
