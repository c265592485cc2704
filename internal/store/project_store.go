package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/events"
)

// ProjectStore holds the ordered project collection in memory. UpdatedAt is
// stamped on every mutation; CreatedAt never changes after creation.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []domain.Project
	broker   *events.Broker
}

// NewProjectStore creates an empty project store. The broker may be nil.
func NewProjectStore(broker *events.Broker) *ProjectStore {
	return &ProjectStore{broker: broker}
}

// List returns all projects in insertion order. The returned slice is a copy.
func (s *ProjectStore) List() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Get returns the project with the given id.
func (s *ProjectStore) Get(id string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// Create generates an id, fills defaults (empty attachment slices, pending
// status, creation timestamps), appends the project and returns it.
func (s *ProjectStore) Create(in domain.ProjectInput) domain.Project {
	now := time.Now()
	p := domain.Project{
		ID:           uuid.NewString(),
		Name:         in.Name,
		ClientID:     in.ClientID,
		Description:  in.Description,
		Status:       in.Status,
		Responsavel:  in.Responsavel,
		Departamento: in.Departamento,
		Notes:        in.Notes,
		PhotosBefore: in.PhotosBefore,
		PhotosAfter:  in.PhotosAfter,
		Documents:    in.Documents,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Status == "" {
		p.Status = domain.StatusPending
	}
	if p.PhotosBefore == nil {
		p.PhotosBefore = []domain.ProjectImage{}
	}
	if p.PhotosAfter == nil {
		p.PhotosAfter = []domain.ProjectImage{}
	}
	if p.Documents == nil {
		p.Documents = []domain.ProjectDocument{}
	}

	s.mu.Lock()
	next := make([]domain.Project, len(s.projects), len(s.projects)+1)
	copy(next, s.projects)
	s.projects = append(next, p)
	s.mu.Unlock()

	s.broker.Publish(events.Event{Entity: "project", Type: events.TypeCreated, ID: p.ID})
	return p
}

// Update merges the patch into the matching project and stamps UpdatedAt.
// Unknown ids are a silent no-op.
func (s *ProjectStore) Update(id string, p domain.ProjectPatch) {
	s.mu.Lock()
	found := false
	next := make([]domain.Project, len(s.projects))
	copy(next, s.projects)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		found = true
		if p.Name != nil {
			next[i].Name = *p.Name
		}
		if p.ClientID != nil {
			next[i].ClientID = *p.ClientID
		}
		if p.Description != nil {
			next[i].Description = *p.Description
		}
		if p.Status != nil {
			next[i].Status = *p.Status
		}
		if p.Responsavel != nil {
			next[i].Responsavel = *p.Responsavel
		}
		if p.Departamento != nil {
			next[i].Departamento = *p.Departamento
		}
		if p.Notes != nil {
			next[i].Notes = *p.Notes
		}
		if p.PhotosBefore != nil {
			next[i].PhotosBefore = *p.PhotosBefore
		}
		if p.PhotosAfter != nil {
			next[i].PhotosAfter = *p.PhotosAfter
		}
		if p.Documents != nil {
			next[i].Documents = *p.Documents
		}
		next[i].UpdatedAt = time.Now()
	}
	if found {
		s.projects = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "project", Type: events.TypeUpdated, ID: id})
	}
}

// Delete removes the matching project; absent ids are a no-op. Attachments
// live inside the project record, so nothing else needs cleaning up.
func (s *ProjectStore) Delete(id string) {
	s.mu.Lock()
	found := false
	next := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if found {
		s.projects = next
	}
	s.mu.Unlock()

	if found {
		s.broker.Publish(events.Event{Entity: "project", Type: events.TypeDeleted, ID: id})
	}
}

// Len returns the number of projects.
func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}
