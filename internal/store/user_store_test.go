package store

import (
	"testing"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

func TestUserCreateAndGet(t *testing.T) {
	s := NewUserStore(nil)

	u := s.Create(domain.UserInput{
		Name:         "Administrador",
		Email:        "admin@sistema.com",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleAdmin,
		Department:   "Administração",
		Active:       true,
	})
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("createdAt not stamped")
	}

	got, ok := s.Get(u.ID)
	if !ok || got.Email != "admin@sistema.com" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}

func TestUserPartialUpdate(t *testing.T) {
	s := NewUserStore(nil)
	u := s.Create(domain.UserInput{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: domain.RoleEmployee, Active: true})

	active := false
	s.Update(u.ID, domain.UserPatch{Active: &active})

	got, _ := s.Get(u.ID)
	if got.Active {
		t.Fatalf("active not patched")
	}
	if got.Name != "Ana" || got.PasswordHash != "h" || got.Role != domain.RoleEmployee {
		t.Fatalf("unpatched fields changed: %+v", got)
	}
}

func TestUserDuplicateEmailsAllowed(t *testing.T) {
	s := NewUserStore(nil)
	s.Create(domain.UserInput{Name: "A", Email: "same@x.com", PasswordHash: "h1", Role: domain.RoleEmployee})
	s.Create(domain.UserInput{Name: "B", Email: "same@x.com", PasswordHash: "h2", Role: domain.RoleEmployee})

	// The store does not enforce uniqueness; authentication resolves
	// duplicates by insertion order.
	if s.Len() != 2 {
		t.Fatalf("expected both users stored, got %d", s.Len())
	}
}

func TestUserDeleteIsIdempotent(t *testing.T) {
	s := NewUserStore(nil)
	u := s.Create(domain.UserInput{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: domain.RoleEmployee})

	s.Delete(u.ID)
	s.Delete(u.ID)
	if s.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestSessionUserHasNoCredentialFields(t *testing.T) {
	u := domain.User{ID: "u1", Name: "Ana", Email: "ana@x.com", PasswordHash: "secret", Role: domain.RoleAdmin}
	su := u.SessionUser()

	if su.ID != "u1" || su.Email != "ana@x.com" || su.Role != domain.RoleAdmin {
		t.Fatalf("projection lost fields: %+v", su)
	}
}
