package state

import (
	"context"
	"errors"
	"sync"

	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/storage"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRemoteLogout       = errors.New("remote logout failed")
	ErrStorage            = errors.New("session storage failed")
)

// API is the subset of the FundSight data API the store depends on.
// *fundapi.Client implements it.
type API interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	GetInvestments(ctx context.Context) ([]models.Investment, error)
	GetFunds(ctx context.Context) ([]models.Fund, error)
}

// Listener is notified with a fresh snapshot after every state change
type Listener func(State)

// sequence numbers requests of one kind so late responses can be dropped
type sequence struct {
	issued  uint64
	applied uint64
}

func (q *sequence) next() uint64 {
	q.issued++
	return q.issued
}

// accept reports whether the response tagged n may be applied, and
// whether it is the most recent request issued.
func (q *sequence) accept(n uint64) (ok, latest bool) {
	if n <= q.applied {
		return false, false
	}
	q.applied = n
	return true, n == q.issued
}

// discard makes every request issued so far stale
func (q *sequence) discard() {
	q.applied = q.issued
}

// Store owns the application state. It is safe for concurrent use: all
// mutations go through the reducers while mu is held, and remote calls
// run without the lock.
type Store struct {
	mu        sync.Mutex
	state     State
	invSeq    sequence
	fundSeq   sequence
	listeners map[int]Listener
	nextID    int

	api      API
	storage  storage.Storage
	validate *validator.Validate
}

// NewStore creates a store in its initial (signed out, idle) state.
// Call Restore to pick up a persisted session.
func NewStore(api API, st storage.Storage) *Store {
	return &Store{
		state:     initialState(),
		listeners: make(map[int]Listener),
		api:       api,
		storage:   st,
		validate:  validator.New(),
	}
}

// SetAPI replaces the remote API. The API client usually reads its token
// from the store, so wiring happens after both exist.
func (s *Store) SetAPI(api API) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the in-memory session token, "" when signed out.
// It has the fundapi.TokenSource signature.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Session.Token
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// update applies fn under the lock and notifies listeners afterwards
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// resetPortfolio drops the fetched lists and selection. Fetches still in
// flight are discarded when they return. Callers hold the update lock.
func (s *Store) resetPortfolio(st *State) {
	s.invSeq.discard()
	s.fundSeq.discard()
	st.Portfolio = portfolioReset(st.Portfolio)
}

func (s *Store) client() API {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.api
}
