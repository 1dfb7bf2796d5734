package session

import "testing"

func TestGetDefaultsToIdle(t *testing.T) {
	s := NewStore()

	if got := s.Get(7); got != StateIdle {
		t.Errorf("expected idle for unseen user, got %q", got)
	}
	// First observation records the user explicitly.
	if s.Len() != 1 {
		t.Errorf("expected user recorded at first sight, len=%d", s.Len())
	}
}

func TestSetAndGet(t *testing.T) {
	s := NewStore()
	s.Set(7, StateEnteringCode)

	if got := s.Get(7); got != StateEnteringCode {
		t.Errorf("got %q, want %q", got, StateEnteringCode)
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Set(7, StateTalkingToAdmin)
	s.Clear(7)

	if got := s.Get(7); got != StateIdle {
		t.Errorf("expected idle after clear, got %q", got)
	}
}

func TestClearRemovesKey(t *testing.T) {
	s := NewStore()
	s.Set(7, StateEnteringCode)
	s.Clear(7)

	if s.Len() != 0 {
		t.Errorf("expected cleared user removed from store, len=%d", s.Len())
	}
}
