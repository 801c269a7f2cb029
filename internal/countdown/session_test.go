package countdown

import "testing"

func TestCountsDownToExpiry(t *testing.T) {
	const seed = 5
	s := NewSession(seed)

	if s.Expired() {
		t.Fatal("fresh session should be active")
	}

	for i := 0; i < seed-1; i++ {
		if expired := s.Tick(); expired {
			t.Fatalf("expired early on tick %d", i+1)
		}
	}
	if s.Remaining() != 1 {
		t.Fatalf("remaining = %d before final tick, want 1", s.Remaining())
	}

	if expired := s.Tick(); !expired {
		t.Error("final tick should report expiry")
	}
	if s.Remaining() != 0 || !s.Expired() {
		t.Errorf("after %d ticks: remaining=%d state=%v, want 0/expired", seed, s.Remaining(), s.State())
	}
}

func TestExpiredIsTerminal(t *testing.T) {
	s := NewSession(1)
	s.Tick()

	for i := 0; i < 3; i++ {
		if s.Tick() {
			t.Error("expiry must fire exactly once")
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining drifted to %d after expiry", s.Remaining())
	}
}

func TestZeroSeedStartsExpired(t *testing.T) {
	for _, seed := range []int{0, -7} {
		s := NewSession(seed)
		if !s.Expired() {
			t.Errorf("seed %d should start expired", seed)
		}
		if s.Remaining() != 0 {
			t.Errorf("seed %d: remaining = %d, want clamp to 0", seed, s.Remaining())
		}
		if s.Tick() {
			t.Errorf("seed %d: tick fired on a session that never started", seed)
		}
	}
}

func TestFreshMountGetsFreshSession(t *testing.T) {
	a := NewSession(10)
	a.Tick()
	a.Tick()

	b := NewSession(10)
	if b.Remaining() != 10 {
		t.Errorf("new session inherited state: remaining = %d", b.Remaining())
	}
	if a.Remaining() != 8 {
		t.Errorf("original session disturbed: remaining = %d", a.Remaining())
	}
}
