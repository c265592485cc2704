package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/events"
)

// ClientStore holds the ordered client collection in memory. Every mutation
// replaces the backing slice wholesale, so readers never observe a partial
// update.
type ClientStore struct {
	mu      sync.RWMutex
	clients []domain.Client
	broker  *events.Broker
}

// NewClientStore creates an empty client store. The broker may be nil.
func NewClientStore(broker *events.Broker) *ClientStore {
	return &ClientStore{broker: broker}
}

// List returns all clients in insertion order. The returned slice is a copy.
func (s *ClientStore) List() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Get returns the client with the given id.
func (s *ClientStore) Get(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

// Create generates an id, appends the client and returns it.
func (s *ClientStore) Create(in domain.ClientInput) domain.Client {
	c := domain.Client{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
	}
	s.mu.Lock()
	next := make([]domain.Client, len(s.clients), len(s.clients)+1)
	copy(next, s.clients)
	s.clients = append(next, c)
	s.mu.Unlock()

	s.broker.Publish(events.Event{Entity: "client", Type: events.TypeCreated, ID: c.ID})
	return c
}

// Update merges the patch into the matching client. Unknown ids are a
// silent no-op: missing entities are a caller bug, not a runtime fault.
func (s *ClientStore) Update(id string, p domain.ClientPatch) {
	s.mu.Lock()
	found := false
	next := make([]domain.Client, len(s.clients))
	copy(next, s.clients)
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
		if p.Phone != nil {
			next[i].Phone = *p.Phone
		}
		if p.Company != nil {
			next[i].Company = *p.Company
		}
	}
	if found {
		s.clients = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "client", Type: events.TypeUpdated, ID: id})
	}
}

// Delete removes the matching client. Deleting an absent id is a no-op, so
// a repeated delete leaves the collection unchanged.
func (s *ClientStore) Delete(id string) {
	s.mu.Lock()
	found := false
	next := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if found {
		s.clients = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "client", Type: events.TypeDeleted, ID: id})
	}
}

// Replace swaps the whole collection, preserving the given order. Used by
// seeding and bulk imports.
func (s *ClientStore) Replace(clients []domain.Client) {
	next := make([]domain.Client, len(clients))
	copy(next, clients)
	s.mu.Lock()
	s.clients = next
	s.mu.Unlock()
}

// Len returns the number of clients.
func (s *ClientStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
