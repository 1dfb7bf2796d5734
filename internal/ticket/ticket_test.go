package ticket

import (
	"errors"
	"testing"
)

// seqAssigner hands out IDs in order, like the round-robin roster does.
type seqAssigner struct {
	ids  []int64
	next int
}

func (a *seqAssigner) Pick() (int64, bool) {
	if len(a.ids) == 0 {
		return 0, false
	}
	id := a.ids[a.next%len(a.ids)]
	a.next++
	return id, true
}

func TestGetOrCreateAssignsRoundRobin(t *testing.T) {
	r := NewRegistry(&seqAssigner{ids: []int64{100, 200}})

	t1, existed, err := r.GetOrCreate(1)
	if err != nil || existed {
		t.Fatalf("first ticket: existed=%v err=%v", existed, err)
	}
	if t1.AdminID != 100 {
		t.Errorf("user 1 admin: got %d, want 100", t1.AdminID)
	}
	if t1.Code != "1" {
		t.Errorf("user 1 code: got %q, want %q", t1.Code, "1")
	}
	if !t1.Open {
		t.Error("new ticket should be open")
	}

	t2, _, err := r.GetOrCreate(2)
	if err != nil {
		t.Fatalf("second ticket: %v", err)
	}
	if t2.AdminID != 200 {
		t.Errorf("user 2 admin: got %d, want 200", t2.AdminID)
	}
}

func TestGetOrCreateAdminIsImmutable(t *testing.T) {
	a := &seqAssigner{ids: []int64{100, 200}}
	r := NewRegistry(a)

	t1, _, _ := r.GetOrCreate(1)
	// Burn some cursor positions.
	r.GetOrCreate(2)
	r.GetOrCreate(3)

	again, existed, err := r.GetOrCreate(1)
	if err != nil {
		t.Fatalf("repeat getOrCreate: %v", err)
	}
	if !existed {
		t.Error("expected existing open ticket to be reported as a follow-up")
	}
	if again.AdminID != t1.AdminID {
		t.Errorf("adminId changed: got %d, want %d", again.AdminID, t1.AdminID)
	}
}

func TestGetOrCreateNoAdminAvailable(t *testing.T) {
	r := NewRegistry(&seqAssigner{})

	_, _, err := r.GetOrCreate(1)
	if !errors.Is(err, ErrNoAdminAvailable) {
		t.Fatalf("got %v, want ErrNoAdminAvailable", err)
	}
	if _, ok := r.Get(1); ok {
		t.Error("failed creation must not leave a ticket behind")
	}
}

func TestReaffirm(t *testing.T) {
	r := NewRegistry(&seqAssigner{ids: []int64{100}})
	tk, _, _ := r.GetOrCreate(1)
	tk.Open = false // external actor closes the ticket

	r.Reaffirm(1)
	if !tk.Open {
		t.Error("reaffirm should re-open the ticket")
	}

	// No-op without a ticket.
	r.Reaffirm(42)
}

func TestLookupByAdminCode(t *testing.T) {
	r := NewRegistry(&seqAssigner{ids: []int64{100, 200}})
	r.GetOrCreate(42) // admin 100
	r.GetOrCreate(43) // admin 200

	tk, err := r.LookupByAdminCode(100, "42")
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if tk.UserID != 42 {
		t.Errorf("got user %d, want 42", tk.UserID)
	}

	cases := []struct {
		name    string
		adminID int64
		code    string
	}{
		{"nonexistent ticket", 100, "999"},
		{"unparseable code", 100, "abc"},
		{"other admin's ticket", 100, "43"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.LookupByAdminCode(tc.adminID, tc.code); !errors.Is(err, ErrInvalidTicket) {
				t.Errorf("got %v, want ErrInvalidTicket", err)
			}
		})
	}
}

func TestLookupByAdminCodeClosedTicket(t *testing.T) {
	r := NewRegistry(&seqAssigner{ids: []int64{100}})
	tk, _, _ := r.GetOrCreate(42)
	tk.Open = false

	if _, err := r.LookupByAdminCode(100, "42"); !errors.Is(err, ErrInvalidTicket) {
		t.Errorf("got %v, want ErrInvalidTicket for closed ticket", err)
	}
}
