// Package forward implements the one-shot attachment forwarding gate: after
// an admin replies into a ticket, their next attachment auto-forwards to the
// same user exactly once.
package forward

import "sync"

// Gate maps an admin ID to the user who should receive that admin's next
// attachment. Targets are consumed on use; a target never consumed stays
// armed indefinitely.
type Gate struct {
	targets map[int64]int64
	mu      sync.Mutex
}

// NewGate creates an empty gate.
func NewGate() *Gate {
	return &Gate{targets: make(map[int64]int64)}
}

// Arm records userID as the recipient of adminID's next attachment,
// replacing any previous target.
func (g *Gate) Arm(adminID, userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.targets[adminID] = userID
}

// Consume returns and removes the armed target for adminID. Returns false if
// nothing is armed.
func (g *Gate) Consume(adminID int64) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	userID, ok := g.targets[adminID]
	if !ok {
		return 0, false
	}
	delete(g.targets, adminID)
	return userID, true
}

// Armed reports whether adminID currently has a target, without consuming it.
func (g *Gate) Armed(adminID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.targets[adminID]
	return ok
}
