package bootstrap

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
	"github.com/jhoicas/rbac-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Seeder crea las cuentas demo iniciales. Es externo al ciclo de vida de
// cuentas: escribe directo al repositorio y solo corre si el store está
// vacío, por lo que re-ejecutarlo es un no-op.
type Seeder struct {
	repo repository.AccountRepository
	log  *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(repo repository.AccountRepository, log *logger.Logger) *Seeder {
	return &Seeder{repo: repo, log: log}
}

type demoAccount struct {
	username string
	password string
	name     string
	email    string
	role     entity.Role
}

var demoAccounts = []demoAccount{
	{"admin", "admin123", "System Administrator", "admin@company.com", entity.RoleAdministrator},
	{"manager", "manager123", "Operations Manager", "manager@company.com", entity.RoleManager},
	{"clerk", "clerk123", "Warehouse Clerk", "clerk@company.com", entity.RoleWarehouseClerk},
	{"auditor", "auditor123", "Internal Auditor", "auditor@company.com", entity.RoleAuditor},
	{"viewer", "viewer123", "Guest Viewer", "viewer@company.com", entity.RoleViewer},
}

// Run siembra las cuentas demo si no existe ninguna cuenta.
func (s *Seeder) Run() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info().Int64("accounts", count).Msg("el store ya tiene cuentas, se omite el seed")
		return nil
	}

	s.log.Info().Msg("creando cuentas demo...")
	for _, d := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		account := &entity.Account{
			ID:           uuid.New().String(),
			Username:     d.username,
			PasswordHash: string(hash),
			Name:         d.name,
			Email:        d.email,
			Role:         d.role,
			IsActive:     true,
			CreatedAt:    time.Now(),
		}
		if err := s.repo.Save(account); err != nil {
			return err
		}
	}
	s.log.Info().Int("accounts", len(demoAccounts)).Msg("cuentas demo creadas")
	return nil
}
