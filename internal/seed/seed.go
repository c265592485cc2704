// Package seed populates the stores with the initial accounts and, behind a
// feature flag, demonstration data.
package seed

import (
	"log/slog"

	"github.com/carlosfox17/sgp-backend/internal/domain"
	"github.com/carlosfox17/sgp-backend/internal/featureflags"
	"github.com/carlosfox17/sgp-backend/internal/service"
	"github.com/carlosfox17/sgp-backend/internal/store"
)

// Stores bundles the collections the seeder fills.
type Stores struct {
	Clients  *store.ClientStore
	Users    *store.UserStore
	Projects *store.ProjectStore
}

// Run seeds the initial admin account and, when the demo_data flag is set,
// a small sample dataset. Seeding an already-populated user store is a
// no-op so restarts behind a shared store stay idempotent.
func Run(s Stores, adminEmail, adminPassword string, logger *slog.Logger) error {
	if s.Users.Len() > 0 {
		return nil
	}

	hash, err := service.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := s.Users.Create(domain.UserInput{
		Name:         "Administrador",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Department:   "Administração",
		Active:       true,
	})
	logger.Info("seeded admin user", slog.String("user_id", admin.ID), slog.String("email", admin.Email))

	if !featureflags.Enabled("demo_data") {
		return nil
	}

	abc := s.Clients.Create(domain.ClientInput{
		Name:    "Empresa ABC",
		Email:   "contato@abc.com",
		Phone:   "+244 923 000 001",
		Company: "ABC Lda",
	})
	s.Clients.Create(domain.ClientInput{
		Name:    "Empresa XYZ",
		Email:   "contato@xyz.com",
		Phone:   "+244 923 000 002",
		Company: "XYZ SA",
	})
	s.Projects.Create(domain.ProjectInput{
		Name:         "Instalação Elétrica",
		ClientID:     abc.ID,
		Description:  "Instalação elétrica completa do novo escritório",
		Status:       domain.StatusPending,
		Responsavel:  "João Silva",
		Departamento: "Engenharia",
	})
	logger.Info("seeded demo data")
	return nil
}
