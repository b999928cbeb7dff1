package services

import (
	"errors"
	"sync"

	"possystem/internal/domain"
	"possystem/internal/pos"
)

var ErrNoTerminal = errors.New("no open terminal for this session")

// TerminalService holds one pos.Terminal per logged-in session. A single
// lock serialises every terminal operation, the way one UI event loop would.
type TerminalService struct {
	Auth     *AuthService
	Products pos.ProductLookup
	Store    pos.TransactionStore
	Opts     pos.Options

	mu        sync.Mutex
	terminals map[string]*pos.Terminal
}

func NewTerminalService(auth *AuthService, products pos.ProductLookup, store pos.TransactionStore, opts pos.Options) *TerminalService {
	return &TerminalService{
		Auth:      auth,
		Products:  products,
		Store:     store,
		Opts:      opts,
		terminals: make(map[string]*pos.Terminal),
	}
}

// Login authenticates and opens a fresh terminal bound to sid. An existing
// terminal on the same session is replaced.
func (s *TerminalService) Login(sid, username, password string) (*domain.User, error) {
	// authentication runs outside the lock
	u, err := s.Auth.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.terminals[sid]; ok {
		old.Close()
	}
	s.terminals[sid] = pos.NewTerminal(u.Username, u.FullName, s.Products, s.Store, s.Opts)
	return u, nil
}

// Logout closes the terminal bound to sid. It reports whether one was open.
func (s *TerminalService) Logout(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terminals[sid]
	if !ok {
		return false
	}
	t.Close()
	delete(s.terminals, sid)
	return true
}

// Do runs fn against the terminal bound to sid while holding the lock.
func (s *TerminalService) Do(sid string, fn func(t *pos.Terminal) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terminals[sid]
	if !ok {
		return ErrNoTerminal
	}
	return fn(t)
}

// Cashier returns the username and full name on sid's terminal.
func (s *TerminalService) Cashier(sid string) (username, fullName string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.terminals[sid]
	if !ok {
		return "", "", false
	}
	return t.Username, t.FullName, true
}
