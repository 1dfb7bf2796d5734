// Package roster holds the fixed admin pool and the round-robin assignment
// cursor.
package roster

import "sync"

// DefaultName is used for admins without a configured display name.
const DefaultName = "Admin"

// Roster is the ordered admin pool. The ID list and name map are fixed at
// construction; only the assignment cursor mutates.
type Roster struct {
	admins []int64
	names  map[int64]string
	cursor int
	mu     sync.Mutex
}

// New creates a roster from an ordered admin ID list and an optional display
// name map.
func New(admins []int64, names map[int64]string) *Roster {
	ids := make([]int64, len(admins))
	copy(ids, admins)
	nm := make(map[int64]string, len(names))
	for id, name := range names {
		nm[id] = name
	}
	return &Roster{admins: ids, names: nm}
}

// Pick returns the next admin in round-robin order. The cursor advances on
// every call, whether or not the pick is ultimately used, so fairness is over
// picks rather than over successful deliveries. Returns false if the roster
// is empty.
func (r *Roster) Pick() (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.admins) == 0 {
		return 0, false
	}
	id := r.admins[r.cursor%len(r.admins)]
	r.cursor++
	return id, true
}

// IsAdmin reports whether id belongs to the admin pool.
func (r *Roster) IsAdmin(id int64) bool {
	for _, a := range r.admins {
		if a == id {
			return true
		}
	}
	return false
}

// Name returns the admin's display name, or DefaultName if none is configured.
func (r *Roster) Name(id int64) string {
	if name, ok := r.names[id]; ok && name != "" {
		return name
	}
	return DefaultName
}

// Size returns the number of admins in the pool.
func (r *Roster) Size() int {
	return len(r.admins)
}
