package security

import (
	"fmt"
	"log/slog"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

// Permission represents an action permission.
type Permission string

const (
	PermManageClients  Permission = "manage_clients"
	PermManageProjects Permission = "manage_projects"
	PermManageUsers    Permission = "manage_users"
	PermManageSettings Permission = "manage_settings"
	PermTestSmtp       Permission = "test_smtp"
)

// RolePermissions maps roles to their permissions. Employees run the daily
// client/project work; user accounts and application settings are admin
// territory.
var RolePermissions = map[domain.Role][]Permission{
	domain.RoleAdmin: {
		PermManageClients,
		PermManageProjects,
		PermManageUsers,
		PermManageSettings,
		PermTestSmtp,
	},
	domain.RoleEmployee: {
		PermManageClients,
		PermManageProjects,
	},
}

// AuthorizationService handles authorization checks.
type AuthorizationService struct {
	logger *slog.Logger
}

// NewAuthorizationService creates a new authorization service.
func NewAuthorizationService(logger *slog.Logger) *AuthorizationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizationService{logger: logger}
}

// HasPermission checks if a role has a specific permission.
func (as *AuthorizationService) HasPermission(role domain.Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidatePermission validates that a role has a specific permission.
func (as *AuthorizationService) ValidatePermission(role domain.Role, permission Permission) error {
	if !as.HasPermission(role, permission) {
		as.logger.Warn("permission denied",
			slog.String("role", string(role)),
			slog.String("permission", string(permission)),
		)
		return fmt.Errorf("permission denied: %s role cannot %s", role, permission)
	}
	return nil
}
