// Package ticket manages the user-to-admin ticket registry.
package ticket

import (
	"errors"
	"strconv"
	"sync"
)

// ErrNoAdminAvailable is returned when a ticket cannot be created because the
// admin roster is empty.
var ErrNoAdminAvailable = errors.New("no admin available")

// ErrInvalidTicket is returned when an admin references a ticket code with no
// matching open ticket owned by them.
var ErrInvalidTicket = errors.New("invalid ticket")

// Ticket is the durable association between one user and the admin assigned
// to handle their requests. AdminID never changes once assigned.
type Ticket struct {
	UserID  int64
	AdminID int64
	Code    string
	Open    bool
}

// Assigner picks the next admin for a new ticket.
type Assigner interface {
	Pick() (int64, bool)
}

// Registry maps user IDs to their ticket.
type Registry struct {
	tickets  map[int64]*Ticket
	assigner Assigner
	mu       sync.Mutex
}

// NewRegistry creates an empty registry using the given admin assigner.
func NewRegistry(assigner Assigner) *Registry {
	return &Registry{
		tickets:  make(map[int64]*Ticket),
		assigner: assigner,
	}
}

// GetOrCreate returns the user's open ticket, creating one if none exists or
// the existing one is closed. The second return reports whether an open
// ticket already existed before this call (a follow-up rather than a first
// contact). Fails with ErrNoAdminAvailable if a new ticket is needed and the
// roster is empty.
func (r *Registry) GetOrCreate(userID int64) (*Ticket, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tickets[userID]; ok && t.Open {
		return t, true, nil
	}

	adminID, ok := r.assigner.Pick()
	if !ok {
		return nil, false, ErrNoAdminAvailable
	}
	t := &Ticket{
		UserID:  userID,
		AdminID: adminID,
		Code:    strconv.FormatInt(userID, 10),
		Open:    true,
	}
	r.tickets[userID] = t
	return t, false, nil
}

// Reaffirm marks the user's ticket open again. No-op if no ticket exists.
func (r *Registry) Reaffirm(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tickets[userID]; ok {
		t.Open = true
	}
}

// LookupByAdminCode resolves a ticket code sent by an admin. The code is the
// stringified user ID. Fails with ErrInvalidTicket unless the ticket exists,
// is open, and is owned by the calling admin, so one admin cannot reply into
// another admin's ticket.
func (r *Registry) LookupByAdminCode(adminID int64, code string) (*Ticket, error) {
	userID, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return nil, ErrInvalidTicket
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tickets[userID]
	if !ok || t.AdminID != adminID || !t.Open {
		return nil, ErrInvalidTicket
	}
	return t, nil
}

// Get returns the user's ticket, if any.
func (r *Registry) Get(userID int64) (*Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[userID]
	return t, ok
}
