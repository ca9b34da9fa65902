package registration

import (
	"strings"
	"sync"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

// RejectedEmail is refused by every store, standing in for a backend error.
const RejectedEmail = "duplicate@example.com"

// Store keeps users in memory. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	nextID     int
	users      map[int]User
	byEmail    map[string]int
	restricted map[int]bool
}

func NewStore() *Store {
	return &Store{
		nextID:     1,
		users:      make(map[int]User),
		byEmail:    make(map[string]int),
		restricted: make(map[int]bool),
	}
}

// Save assigns an ID and stores u. Emails are unique, case-insensitively.
func (s *Store) Save(u User) rop.Outcome[User, *fault.Fault] {
	key := strings.ToLower(u.Email)
	if key == RejectedEmail {
		return rop.Failure[User](fault.Newf(fault.IO, "backend rejected %s", u.Email).WithStep("save"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return rop.Failure[User](fault.Newf(fault.AlreadyExists, "email %s", u.Email).WithStep("save"))
	}
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return fault.Ok(u)
}

// Restrict hides id from Get. Lookup still sees it.
func (s *Store) Restrict(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restricted[id] = true
}

func (s *Store) Lookup(id int) rop.Option[User] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return rop.Lookup(s.users, id)
}

func (s *Store) FindByEmail(email string) rop.Option[User] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := rop.Lookup(s.byEmail, strings.ToLower(email))
	return rop.AndThenOption(id, func(id int) rop.Option[User] {
		return rop.Lookup(s.users, id)
	})
}

// Get distinguishes a missing user from a restricted one.
func (s *Store) Get(id int) rop.Outcome[User, *fault.Fault] {
	s.mu.RLock()
	restricted := s.restricted[id]
	s.mu.RUnlock()

	if restricted {
		return rop.Failure[User](fault.Newf(fault.PermissionDenied, "user %d", id).WithStep("get"))
	}
	return rop.ToOutcomeElse(s.Lookup(id), func() *fault.Fault {
		return fault.Newf(fault.NotFound, "user %d", id).WithStep("get")
	})
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
