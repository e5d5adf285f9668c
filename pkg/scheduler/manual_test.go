package scheduler

import (
	"testing"
	"time"
)

func TestManual_FiresInTimeOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var got []string

	m.Every(25*time.Second, func() { got = append(got, "rotate") })
	m.Every(30*time.Second, func() { got = append(got, "fetch") })

	m.Advance(60 * time.Second)

	want := []string{"rotate", "fetch", "rotate", "fetch"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if now := m.Now(); !now.Equal(time.Unix(60, 0)) {
		t.Errorf("Now() = %v", now)
	}
}

func TestManual_CancelIsIdempotent(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	cancel := m.Every(time.Second, func() { count++ })

	m.Advance(3 * time.Second)
	cancel()
	cancel()
	m.Advance(3 * time.Second)

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, want 0", m.Active())
	}
}

func TestManual_CallbackSeesItsOwnTime(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManual(start)
	var seen []time.Time
	m.Every(10*time.Second, func() { seen = append(seen, m.Now()) })

	m.Advance(25 * time.Second)

	if len(seen) != 2 {
		t.Fatalf("seen = %v", seen)
	}
	if !seen[0].Equal(start.Add(10*time.Second)) || !seen[1].Equal(start.Add(20*time.Second)) {
		t.Errorf("seen = %v", seen)
	}
}
