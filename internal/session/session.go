// Package session tracks the per-user conversation state.
package session

import "sync"

// State is the conversation mode a user is currently in.
type State string

const (
	// StateIdle is the default mode; messages in it are not routed anywhere.
	StateIdle State = "idle"
	// StateEnteringCode means the next text message is a clue-code attempt.
	StateEnteringCode State = "entering_code"
	// StateTalkingToAdmin means the next text message is relayed to an admin.
	StateTalkingToAdmin State = "talking_to_admin"
)

// Store maps user IDs to their conversation state. Users are initialised to
// StateIdle the first time they are observed, so a later Get cannot tell
// "never seen" apart from "explicitly idle".
type Store struct {
	states map[int64]State
	mu     sync.RWMutex
}

// NewStore creates an empty state store.
func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the user's current state, recording StateIdle at first sight.
func (s *Store) Get(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		state = StateIdle
		s.states[userID] = state
	}
	return state
}

// Set records the user's state.
func (s *Store) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

// Clear resets the user back to StateIdle. The key is removed so long-idle
// users do not accumulate in memory.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Len returns the number of users with a recorded state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
