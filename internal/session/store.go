package session

import (
	"fmt"
	"log"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

const idAttempts = 8

// Store keeps live sessions by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	// reserved holds ids of sessions still being built outside the lock.
	reserved map[string]struct{}
	defaults Settings
	log      *log.Logger
	newID    func() string
	build    func(id string, settings Settings, fen string) (*Session, error)
}

func NewStore(defaults Settings, logger *log.Logger) (*Store, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	st := &Store{
		sessions: make(map[string]*Session),
		reserved: make(map[string]struct{}),
		defaults: defaults,
		log:      logger,
		newID:    func() string { return petname.Generate(3, "-") },
	}
	st.build = func(id string, settings Settings, fen string) (*Session, error) {
		return New(id, settings, fen, st.log)
	}
	return st, nil
}

func (st *Store) Defaults() Settings { return st.defaults }

// Create starts a session and registers it under a fresh id. The session is
// built without holding the store lock, since the engine may open the game.
func (st *Store) Create(settings Settings, fen string) (*Session, error) {
	st.mu.Lock()
	id, err := st.freshID()
	if err == nil {
		st.reserved[id] = struct{}{}
	}
	st.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s, err := st.build(id, settings, fen)

	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.reserved, id)
	if err != nil {
		return nil, err
	}
	if _, taken := st.sessions[id]; taken {
		return nil, fmt.Errorf("session id %q already in use", id)
	}
	st.sessions[id] = s
	st.log.Printf("session %s: created (%s, difficulty %d, human %s)", id, settings.Mode, settings.Difficulty, settings.HumanColor)
	return s, nil
}

func (st *Store) freshID() (string, error) {
	for i := 0; i < idAttempts; i++ {
		id := st.newID()
		_, taken := st.sessions[id]
		_, pending := st.reserved[id]
		if !taken && !pending {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free session id after %d attempts", idAttempts)
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(st.sessions, id)
	st.log.Printf("session %s: deleted", id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
