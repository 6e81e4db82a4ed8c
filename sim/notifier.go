package sim

import (
	"github.com/rotisserie/eris"

	"github.com/starforge/tether/types"
)

// Token identifies one deletion subscription. The zero Token is never issued,
// so unsubscribing a zero Token is a no-op.
type Token struct {
	seq uint64
}

type subscription struct {
	seq       uint64
	entity    types.EntityID
	fn        func()
	cancelled bool
}

// deletionNotifier guarantees every observer of an entity's destruction is
// told exactly once, synchronously, before the entity becomes unsafe to use.
// Observers are invoked in subscription order and may unsubscribe themselves
// (or any other observer) from inside their callback.
type deletionNotifier struct {
	nextSeq uint64
	subs    map[types.EntityID][]*subscription
	bySeq   map[uint64]*subscription
}

func newDeletionNotifier() *deletionNotifier {
	return &deletionNotifier{
		subs:  map[types.EntityID][]*subscription{},
		bySeq: map[uint64]*subscription{},
	}
}

func (n *deletionNotifier) subscribe(e *Entity, fn func()) (Token, error) {
	if e == nil || e.destroyed || e.id == 0 {
		return Token{}, eris.Wrap(ErrInvalidEntity, "subscribe")
	}
	n.nextSeq++
	s := &subscription{seq: n.nextSeq, entity: e.id, fn: fn}
	n.subs[e.id] = append(n.subs[e.id], s)
	n.bySeq[s.seq] = s
	return Token{seq: s.seq}, nil
}

// unsubscribe is idempotent: unknown, already-cancelled, and already-notified
// tokens are all silently ignored. The subscription is removed from its
// entity's list immediately so long-lived entities don't accumulate cancelled
// entries.
func (n *deletionNotifier) unsubscribe(tok Token) {
	s, ok := n.bySeq[tok.seq]
	if !ok {
		return
	}
	s.cancelled = true
	delete(n.bySeq, tok.seq)
	pending := n.subs[s.entity]
	for i, got := range pending {
		if got == s {
			n.subs[s.entity] = append(pending[:i], pending[i+1:]...)
			break
		}
	}
	if len(n.subs[s.entity]) == 0 {
		delete(n.subs, s.entity)
	}
}

// notifyDestruction fires every live subscription for e and clears the set.
// Cancellation is flag-based, so a callback unsubscribing any token cannot
// invalidate the iteration.
func (n *deletionNotifier) notifyDestruction(e *Entity) {
	pending := n.subs[e.id]
	delete(n.subs, e.id)
	for _, s := range pending {
		if s.cancelled {
			continue
		}
		s.cancelled = true
		delete(n.bySeq, s.seq)
		s.fn()
	}
}
