package timing

import (
	"container/heap"
	"sort"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

// Token identifies a scheduled entry so it can be cancelled.
type Token uint64

// Fired is an action whose time has come.
type Fired[K comparable] struct {
	Token Token
	Owner entity.ID
	Kind  K
	At    time.Duration // scheduled fire time

	// Expired is true when the action marks the end of a timed effect
	// applied with Apply. Magnitude carries the effect's magnitude.
	Expired   bool
	Magnitude float64
}

// Effect is an active timed effect.
type Effect[K comparable] struct {
	Kind      K
	Target    entity.ID
	Start     time.Duration
	Duration  time.Duration
	Magnitude float64
	token     Token
}

// Expiry returns the time at which the effect ends.
func (e Effect[K]) Expiry() time.Duration { return e.Start + e.Duration }

type effectKey[K comparable] struct {
	kind   K
	target entity.ID
}

// Manager keeps an ordered schedule of one-shot and repeating actions plus a
// table of timed effects keyed by (kind, target). It is driven by the caller
// passing the current time to Advance; it never reads a wall clock.
type Manager[K comparable] struct {
	queue   queue[K]
	tokens  map[Token]*entry[K]
	effects map[effectKey[K]]*Effect[K]
	next    Token
	seq     uint64
}

// NewManager creates an empty manager.
func NewManager[K comparable]() *Manager[K] {
	return &Manager[K]{
		tokens:  make(map[Token]*entry[K]),
		effects: make(map[effectKey[K]]*Effect[K]),
	}
}

// Reset drops every pending action and effect.
func (m *Manager[K]) Reset() {
	m.queue = m.queue[:0]
	clear(m.tokens)
	clear(m.effects)
	m.next = 0
	m.seq = 0
}

func (m *Manager[K]) push(e *entry[K]) Token {
	m.next++
	m.seq++
	e.token = m.next
	e.seq = m.seq
	heap.Push(&m.queue, e)
	m.tokens[e.token] = e
	return e.token
}

// Schedule fires kind for owner once at the given time.
func (m *Manager[K]) Schedule(owner entity.ID, kind K, at time.Duration) Token {
	return m.push(&entry[K]{at: at, owner: owner, kind: kind})
}

// Every fires kind for owner at first and then every interval until
// cancelled. A non-positive interval degrades to a one-shot.
func (m *Manager[K]) Every(owner entity.ID, kind K, first, interval time.Duration) Token {
	if interval < 0 {
		interval = 0
	}
	return m.push(&entry[K]{at: first, owner: owner, kind: kind, every: interval})
}

// Pending reports whether token is still scheduled.
func (m *Manager[K]) Pending(tok Token) bool {
	_, ok := m.tokens[tok]
	return ok
}

// Cancel removes a scheduled entry. Cancelling an unknown or already fired
// token is a no-op and returns false. Cancelling an effect's expiry removes
// the effect too.
func (m *Manager[K]) Cancel(tok Token) bool {
	e, ok := m.tokens[tok]
	if !ok {
		return false
	}
	m.remove(e)
	if e.expiry {
		key := effectKey[K]{kind: e.kind, target: e.owner}
		if eff, ok := m.effects[key]; ok && eff.token == tok {
			delete(m.effects, key)
		}
	}
	return true
}

func (m *Manager[K]) remove(e *entry[K]) {
	if e.index >= 0 {
		heap.Remove(&m.queue, e.index)
	}
	delete(m.tokens, e.token)
}

// CancelTarget removes every scheduled action and effect bound to owner and
// returns how many were removed.
func (m *Manager[K]) CancelTarget(owner entity.ID) int {
	var doomed []*entry[K]
	for _, e := range m.tokens {
		if e.owner == owner {
			doomed = append(doomed, e)
		}
	}
	for _, e := range doomed {
		m.remove(e)
	}
	for key := range m.effects {
		if key.target == owner {
			delete(m.effects, key)
		}
	}
	return len(doomed)
}

// Advance pops every action due at or before now, in timestamp order (ties
// in scheduling order). Repeating actions are rescheduled and may fire more
// than once if now jumped past several intervals. Effects whose expiry fires
// are removed from the table before being returned.
func (m *Manager[K]) Advance(now time.Duration) []Fired[K] {
	var fired []Fired[K]
	for len(m.queue) > 0 && m.queue[0].at <= now {
		e := heap.Pop(&m.queue).(*entry[K])
		f := Fired[K]{Token: e.token, Owner: e.owner, Kind: e.kind, At: e.at}

		if e.expiry {
			key := effectKey[K]{kind: e.kind, target: e.owner}
			if eff, ok := m.effects[key]; ok && eff.token == e.token {
				f.Expired = true
				f.Magnitude = eff.Magnitude
				delete(m.effects, key)
			}
		}

		if e.every > 0 {
			e.at += e.every
			m.seq++
			e.seq = m.seq
			heap.Push(&m.queue, e)
		} else {
			delete(m.tokens, e.token)
		}
		fired = append(fired, f)
	}
	return fired
}

// Len returns the number of pending scheduled entries.
func (m *Manager[K]) Len() int { return len(m.queue) }

// Apply starts a timed effect, or refreshes it if (kind, target) is already
// active. A refresh resets the start time to now and keeps the original
// magnitude. Returns true when an active effect was refreshed.
func (m *Manager[K]) Apply(kind K, target entity.ID, now, duration time.Duration, magnitude float64) bool {
	key := effectKey[K]{kind: kind, target: target}
	if eff, ok := m.effects[key]; ok {
		if e, ok := m.tokens[eff.token]; ok {
			m.remove(e)
		}
		eff.Start = now
		eff.Duration = duration
		eff.token = m.push(&entry[K]{at: now + duration, owner: target, kind: kind, expiry: true})
		return true
	}

	eff := &Effect[K]{
		Kind:      kind,
		Target:    target,
		Start:     now,
		Duration:  duration,
		Magnitude: magnitude,
	}
	eff.token = m.push(&entry[K]{at: now + duration, owner: target, kind: kind, expiry: true})
	m.effects[key] = eff
	return false
}

// Active reports whether (kind, target) has an effect running.
func (m *Manager[K]) Active(kind K, target entity.ID) bool {
	_, ok := m.effects[effectKey[K]{kind: kind, target: target}]
	return ok
}

// Lookup returns a copy of the active effect for (kind, target).
func (m *Manager[K]) Lookup(kind K, target entity.ID) (Effect[K], bool) {
	eff, ok := m.effects[effectKey[K]{kind: kind, target: target}]
	if !ok {
		return Effect[K]{}, false
	}
	return *eff, true
}

// Remaining returns how long the effect has left at now, or 0 if inactive.
func (m *Manager[K]) Remaining(kind K, target entity.ID, now time.Duration) time.Duration {
	eff, ok := m.effects[effectKey[K]{kind: kind, target: target}]
	if !ok {
		return 0
	}
	return max(eff.Expiry()-now, 0)
}

// Remove ends an effect early without reporting it from Advance.
func (m *Manager[K]) Remove(kind K, target entity.ID) bool {
	key := effectKey[K]{kind: kind, target: target}
	eff, ok := m.effects[key]
	if !ok {
		return false
	}
	if e, ok := m.tokens[eff.token]; ok {
		m.remove(e)
	}
	delete(m.effects, key)
	return true
}

// Effects returns active effects for target ordered by expiry.
func (m *Manager[K]) Effects(target entity.ID) []Effect[K] {
	var out []Effect[K]
	for key, eff := range m.effects {
		if key.target == target {
			out = append(out, *eff)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Expiry() != out[j].Expiry() {
			return out[i].Expiry() < out[j].Expiry()
		}
		return out[i].token < out[j].token
	})
	return out
}
