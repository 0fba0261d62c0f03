package world

import (
	"sort"
	"sync"
	"time"
)

// PKStatus is a session's position in the player-kill flow.
type PKStatus int

const (
	PKIdle PKStatus = iota
	PKPending
	PKActive
	PKResolved
)

// Session is one online character plus its transient combat state. All
// access goes through Lock/Unlock; cross-session work uses State.LockPair.
type Session struct {
	mu sync.Mutex

	Character *Character

	// Encounter is the live monster this session fights, nil when idle.
	Encounter *Monster

	PKStatus     PKStatus
	PKOpponent   string
	LastPKAction time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// State tracks all online sessions keyed by character name.
type State struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewState creates an empty session registry.
func NewState() *State {
	return &State{sessions: make(map[string]*Session)}
}

// Attach registers a character and returns its session. An existing session
// for the same name is replaced.
func (st *State) Attach(c *Character) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := &Session{Character: c}
	st.sessions[c.Name] = s
	return s
}

// Get returns the session for a character name.
func (st *State) Get(name string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[name]
	return s, ok
}

// Detach removes a session from the registry.
func (st *State) Detach(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, name)
}

// Names lists online character names.
func (st *State) Names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.sessions))
	for name := range st.sessions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LockPair locks two sessions in character-name order so that concurrent
// pairings can never deadlock. The returned func unlocks both.
func LockPair(a, b *Session) func() {
	if a == b {
		a.Lock()
		return a.Unlock
	}
	first, second := a, b
	if second.Character.Name < first.Character.Name {
		first, second = second, first
	}
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
