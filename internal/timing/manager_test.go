package timing

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vovakirdan/silhouette-runner/internal/entity"
)

type kind int

const (
	kindA kind = iota
	kindB
	kindC
)

const (
	ownerOne entity.ID = 1
	ownerTwo entity.ID = 2
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestScheduleFiresInOrder(t *testing.T) {
	m := NewManager[kind]()
	m.Schedule(ownerOne, kindC, ms(300))
	m.Schedule(ownerOne, kindA, ms(100))
	m.Schedule(ownerTwo, kindB, ms(100))

	if got := m.Advance(ms(50)); len(got) != 0 {
		t.Fatalf("Advance(50ms) fired %d actions, expected 0", len(got))
	}

	got := m.Advance(ms(300))
	expected := []kind{kindA, kindB, kindC}
	if len(got) != len(expected) {
		t.Fatalf("Advance(300ms) fired %d actions, expected %d", len(got), len(expected))
	}
	for i, k := range expected {
		if got[i].Kind != k {
			t.Errorf("fired[%d].Kind = %v, expected %v", i, got[i].Kind, k)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", m.Len())
	}
}

func TestCancel(t *testing.T) {
	m := NewManager[kind]()
	tok := m.Schedule(ownerOne, kindA, ms(100))

	if !m.Cancel(tok) {
		t.Error("Cancel of pending token should succeed")
	}
	if m.Cancel(tok) {
		t.Error("second Cancel should be a no-op")
	}
	if got := m.Advance(ms(200)); len(got) != 0 {
		t.Errorf("cancelled action fired: %+v", got)
	}
}

func TestEvery(t *testing.T) {
	m := NewManager[kind]()
	tok := m.Every(ownerOne, kindA, ms(100), ms(100))

	got := m.Advance(ms(350))
	if len(got) != 3 {
		t.Fatalf("Advance(350ms) fired %d times, expected 3", len(got))
	}
	for i, f := range got {
		if f.At != ms(100*(i+1)) {
			t.Errorf("fire %d at %v, expected %v", i, f.At, ms(100*(i+1)))
		}
	}

	if !m.Pending(tok) {
		t.Error("repeating token should remain pending")
	}
	m.Cancel(tok)
	if got := m.Advance(ms(1000)); len(got) != 0 {
		t.Errorf("cancelled repeating action fired %d times", len(got))
	}
}

func TestCancelTarget(t *testing.T) {
	m := NewManager[kind]()
	m.Schedule(ownerOne, kindA, ms(100))
	m.Every(ownerOne, kindB, ms(100), ms(50))
	m.Apply(kindC, ownerOne, 0, ms(500), 1)
	m.Schedule(ownerTwo, kindA, ms(100))

	if n := m.CancelTarget(ownerOne); n != 3 {
		t.Errorf("CancelTarget() = %d, expected 3", n)
	}
	if m.Active(kindC, ownerOne) {
		t.Error("effect on destroyed target should be gone")
	}

	got := m.Advance(ms(1000))
	if len(got) != 1 || got[0].Owner != ownerTwo {
		t.Errorf("Advance fired %+v, expected only ownerTwo's action", got)
	}
}

func TestApplyAndExpire(t *testing.T) {
	m := NewManager[kind]()
	if refreshed := m.Apply(kindA, ownerOne, 0, ms(5000), 2); refreshed {
		t.Error("first Apply should not report a refresh")
	}
	if !m.Active(kindA, ownerOne) {
		t.Fatal("effect should be active")
	}
	if r := m.Remaining(kindA, ownerOne, ms(1000)); r != ms(4000) {
		t.Errorf("Remaining() = %v, expected 4s", r)
	}

	got := m.Advance(ms(5000))
	if len(got) != 1 || !got[0].Expired || got[0].Magnitude != 2 {
		t.Fatalf("expected one expiry with magnitude 2, got %+v", got)
	}
	if m.Active(kindA, ownerOne) {
		t.Error("effect should be gone after expiry")
	}
	if m.Remaining(kindA, ownerOne, ms(5000)) != 0 {
		t.Error("Remaining of inactive effect should be 0")
	}
}

func TestApplyRefreshKeepsMagnitude(t *testing.T) {
	m := NewManager[kind]()
	m.Apply(kindA, ownerOne, 0, ms(5000), 2)

	if refreshed := m.Apply(kindA, ownerOne, ms(3000), ms(5000), 99); !refreshed {
		t.Error("re-Apply should report a refresh")
	}

	eff, ok := m.Lookup(kindA, ownerOne)
	if !ok {
		t.Fatal("effect should still be active")
	}
	if eff.Magnitude != 2 {
		t.Errorf("Magnitude = %f, expected 2", eff.Magnitude)
	}
	if eff.Expiry() != ms(8000) {
		t.Errorf("Expiry() = %v, expected 8s", eff.Expiry())
	}

	// The old expiry must not fire.
	if got := m.Advance(ms(5000)); len(got) != 0 {
		t.Errorf("stale expiry fired: %+v", got)
	}
	got := m.Advance(ms(8000))
	if len(got) != 1 || !got[0].Expired {
		t.Errorf("expected refreshed expiry at 8s, got %+v", got)
	}
}

func TestRemoveEffect(t *testing.T) {
	m := NewManager[kind]()
	m.Apply(kindA, ownerOne, 0, ms(100), 1)

	if !m.Remove(kindA, ownerOne) {
		t.Error("Remove of active effect should succeed")
	}
	if m.Remove(kindA, ownerOne) {
		t.Error("second Remove should be a no-op")
	}
	if got := m.Advance(ms(200)); len(got) != 0 {
		t.Errorf("removed effect reported expiry: %+v", got)
	}
}

func TestEffectsOrderedByExpiry(t *testing.T) {
	m := NewManager[kind]()
	m.Apply(kindA, ownerOne, 0, ms(300), 1)
	m.Apply(kindB, ownerOne, 0, ms(100), 1)
	m.Apply(kindC, ownerTwo, 0, ms(200), 1)

	effs := m.Effects(ownerOne)
	if len(effs) != 2 {
		t.Fatalf("Effects() returned %d, expected 2", len(effs))
	}
	if effs[0].Kind != kindB || effs[1].Kind != kindA {
		t.Errorf("Effects() order = %v, %v; expected kindB, kindA", effs[0].Kind, effs[1].Kind)
	}
}

func TestReset(t *testing.T) {
	m := NewManager[kind]()
	m.Schedule(ownerOne, kindA, ms(1))
	m.Apply(kindB, ownerOne, 0, ms(1), 1)
	m.Reset()

	if m.Len() != 0 || m.Active(kindB, ownerOne) {
		t.Error("Reset should clear schedule and effects")
	}
	if got := m.Advance(ms(10)); len(got) != 0 {
		t.Errorf("Advance after Reset fired %+v", got)
	}
}

func TestAdvanceOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewManager[kind]()
		n := rapid.IntRange(1, 40).Draw(t, "n")
		cancelled := make(map[Token]bool)
		var tokens []Token

		for i := 0; i < n; i++ {
			at := ms(rapid.IntRange(0, 1000).Draw(t, "at"))
			tokens = append(tokens, m.Schedule(ownerOne, kindA, at))
		}
		for _, tok := range tokens {
			if rapid.Bool().Draw(t, "cancel") {
				m.Cancel(tok)
				cancelled[tok] = true
			}
		}

		var all []Fired[kind]
		for now := 0; now <= 1000; now += rapid.IntRange(1, 300).Draw(t, "step") {
			all = append(all, m.Advance(ms(now))...)
		}
		all = append(all, m.Advance(ms(1000))...)

		if len(all)+len(cancelled) != n {
			t.Fatalf("fired %d + cancelled %d, expected %d", len(all), len(cancelled), n)
		}
		seen := make(map[Token]bool)
		for i, f := range all {
			if cancelled[f.Token] {
				t.Fatalf("cancelled token %d fired", f.Token)
			}
			if seen[f.Token] {
				t.Fatalf("token %d fired twice", f.Token)
			}
			seen[f.Token] = true
			if i > 0 && all[i-1].At > f.At {
				t.Fatalf("fire order not monotonic: %v after %v", f.At, all[i-1].At)
			}
		}
	})
}
