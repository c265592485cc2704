package store

import (
	"testing"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

func TestProjectCreateDefaults(t *testing.T) {
	s := NewProjectStore(nil)

	p := s.Create(domain.ProjectInput{Name: "Obra", ClientID: "c1"})
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.Status != domain.StatusPending {
		t.Fatalf("expected default pending status, got %q", p.Status)
	}
	if p.PhotosBefore == nil || p.PhotosAfter == nil || p.Documents == nil {
		t.Fatalf("expected empty attachment slices, not nil")
	}
	if len(p.PhotosBefore) != 0 || len(p.PhotosAfter) != 0 || len(p.Documents) != 0 {
		t.Fatalf("expected empty attachments")
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt at creation")
	}
}

func TestProjectCreateKeepsExplicitStatus(t *testing.T) {
	s := NewProjectStore(nil)
	p := s.Create(domain.ProjectInput{Name: "Obra", ClientID: "c1", Status: domain.StatusApproved})
	if p.Status != domain.StatusApproved {
		t.Fatalf("explicit status overwritten: %q", p.Status)
	}
}

func TestProjectUpdateStampsUpdatedAtOnly(t *testing.T) {
	s := NewProjectStore(nil)
	p := s.Create(domain.ProjectInput{Name: "Obra", ClientID: "c1"})

	time.Sleep(5 * time.Millisecond)
	status := domain.StatusCompleted
	s.Update(p.ID, domain.ProjectPatch{Status: &status})

	got, ok := s.Get(p.ID)
	if !ok {
		t.Fatalf("project disappeared")
	}
	if got.Status != domain.StatusCompleted {
		t.Fatalf("status not updated: %q", got.Status)
	}
	if !got.UpdatedAt.After(p.UpdatedAt) {
		t.Fatalf("updatedAt not stamped on update")
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("createdAt changed on update")
	}
}

func TestProjectUpdateUnknownIDIsNoop(t *testing.T) {
	s := NewProjectStore(nil)
	p := s.Create(domain.ProjectInput{Name: "Obra", ClientID: "c1"})

	status := domain.StatusOnHold
	s.Update("missing", domain.ProjectPatch{Status: &status})

	got, _ := s.Get(p.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("unknown-id update touched an existing project")
	}
}

func TestProjectSlicePatchReplacesWholeSlice(t *testing.T) {
	s := NewProjectStore(nil)
	p := s.Create(domain.ProjectInput{
		Name:     "Obra",
		ClientID: "c1",
		Documents: []domain.ProjectDocument{
			{ID: "d1", Name: "proposta.pdf", Type: domain.DocPropostaComercial},
			{ID: "d2", Name: "po.pdf", Type: domain.DocPO},
		},
	})

	docs := []domain.ProjectDocument{{ID: "d3", Name: "fatura.pdf", Type: domain.DocFatura}}
	s.Update(p.ID, domain.ProjectPatch{Documents: &docs})

	got, _ := s.Get(p.ID)
	if len(got.Documents) != 1 || got.Documents[0].ID != "d3" {
		t.Fatalf("expected documents replaced wholesale, got %+v", got.Documents)
	}
}

func TestProjectDocumentByType(t *testing.T) {
	p := domain.Project{Documents: []domain.ProjectDocument{
		{ID: "d1", Type: domain.DocFatura},
		{ID: "d2", Type: domain.DocFatura},
		{ID: "d3", Type: domain.DocRecibo},
	}}

	// Duplicates of a type are allowed; lookup returns the first.
	doc, ok := p.DocumentByType(domain.DocFatura)
	if !ok || doc.ID != "d1" {
		t.Fatalf("expected first fatura document, got %+v ok=%v", doc, ok)
	}
	if _, ok := p.DocumentByType(domain.DocCertificacao); ok {
		t.Fatalf("expected no certificacao document")
	}
}

func TestProjectDeleteIsIdempotent(t *testing.T) {
	s := NewProjectStore(nil)
	p := s.Create(domain.ProjectInput{Name: "Obra", ClientID: "c1"})

	s.Delete(p.ID)
	s.Delete(p.ID)
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}
