package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/events"
)

// UserStore holds the ordered user collection in memory. Email uniqueness
// is not enforced at write time; authentication resolves duplicates by
// first-match-wins over insertion order.
type UserStore struct {
	mu     sync.RWMutex
	users  []domain.User
	broker *events.Broker
}

// NewUserStore creates an empty user store. The broker may be nil.
func NewUserStore(broker *events.Broker) *UserStore {
	return &UserStore{broker: broker}
}

// List returns all users in insertion order. The returned slice is a copy.
func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// Get returns the user with the given id.
func (s *UserStore) Get(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// Create generates an id, stamps the creation time, appends the user and
// returns it.
func (s *UserStore) Create(in domain.UserInput) domain.User {
	u := domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		Department:   in.Department,
		Active:       in.Active,
		CreatedAt:    time.Now(),
	}
	s.mu.Lock()
	next := make([]domain.User, len(s.users), len(s.users)+1)
	copy(next, s.users)
	s.users = append(next, u)
	s.mu.Unlock()

	s.broker.Publish(events.Event{Entity: "user", Type: events.TypeCreated, ID: u.ID})
	return u
}

// Update merges the patch into the matching user. Unknown ids are a silent
// no-op. CreatedAt is immutable.
func (s *UserStore) Update(id string, p domain.UserPatch) {
	s.mu.Lock()
	found := false
	next := make([]domain.User, len(s.users))
	copy(next, s.users)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		found = true
		if p.Name != nil {
			next[i].Name = *p.Name
		}
		if p.Email != nil {
			next[i].Email = *p.Email
		}
		if p.PasswordHash != nil {
			next[i].PasswordHash = *p.PasswordHash
		}
		if p.Role != nil {
			next[i].Role = *p.Role
		}
		if p.Department != nil {
			next[i].Department = *p.Department
		}
		if p.Active != nil {
			next[i].Active = *p.Active
		}
	}
	if found {
		s.users = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "user", Type: events.TypeUpdated, ID: id})
	}
}

// Delete removes the matching user; absent ids are a no-op.
func (s *UserStore) Delete(id string) {
	s.mu.Lock()
	found := false
	next := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.ID == id {
			found = true
			continue
		}
		next = append(next, u)
	}
	if found {
		s.users = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "user", Type: events.TypeDeleted, ID: id})
	}
}

// Len returns the number of users.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
