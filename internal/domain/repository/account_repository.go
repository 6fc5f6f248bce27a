package repository

import "github.com/jhoicas/rbac-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account (DIP).
// Los lookups devuelven (nil, nil) cuando el registro no existe; los use cases
// deciden si eso es un error de dominio.
type AccountRepository interface {
	// Save inserta o reemplaza completo por ID.
	Save(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByUsername(username string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Delete(id string) error
	// ListAll devuelve todas las cuentas ordenadas por created_at descendente.
	ListAll() ([]*entity.Account, error)
	ListByRole(role entity.Role) ([]*entity.Account, error)
	CountByRole(role entity.Role) (int64, error)
	Count() (int64, error)
	// Search busca por substring case-insensitive sobre name y username.
	Search(query string) ([]*entity.Account, error)
}
