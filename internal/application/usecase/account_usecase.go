package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/rbac-api/internal/application/dto"
	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// AccountUseCase aplica el ciclo de vida de cuentas y sus invariantes:
// unicidad de username/email y protección del último administrador.
//
// Las escrituras que dependen de un check-then-act (crear, actualizar email,
// eliminar, cambiar rol) se serializan con mu para cerrar la carrera entre el
// chequeo y la escritura. El adaptador PostgreSQL además impone unicidad con
// constraints, así que la invariante sobrevive aun con múltiples réplicas.
type AccountUseCase struct {
	repo repository.AccountRepository
	mu   sync.Mutex
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia.
func NewAccountUseCase(repo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// Create crea una cuenta con rol explícito (vacío = VIEWER). Chequea username
// primero y email después; hashea el password con bcrypt antes de persistir.
func (uc *AccountUseCase) Create(in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	role := entity.RoleViewer
	if in.Role != "" {
		parsed, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if exists, err := uc.repo.ExistsByUsername(in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.Duplicatef("User already exists with username: '%s'", in.Username)
	}
	if exists, err := uc.repo.ExistsByEmail(in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.Duplicatef("User already exists with email: '%s'", in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &entity.Account{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Email:        in.Email,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Save(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByID obtiene una cuenta por ID.
func (uc *AccountUseCase) GetByID(id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NotFoundf("User not found with id: '%s'", id)
	}
	return toAccountResponse(account), nil
}

// GetByUsername obtiene una cuenta por username (exacto, case-sensitive).
func (uc *AccountUseCase) GetByUsername(username string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NotFoundf("User not found with username: '%s'", username)
	}
	return toAccountResponse(account), nil
}

// List devuelve todas las cuentas ordenadas por fecha de creación descendente.
func (uc *AccountUseCase) List() ([]*dto.AccountResponse, error) {
	accounts, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return toAccountResponses(accounts), nil
}

// Search busca cuentas cuyo name o username contenga el texto (case-insensitive).
func (uc *AccountUseCase) Search(query string) ([]*dto.AccountResponse, error) {
	accounts, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	return toAccountResponses(accounts), nil
}

// ListByRole devuelve las cuentas con el rol dado.
func (uc *AccountUseCase) ListByRole(roleName string) ([]*dto.AccountResponse, error) {
	role, err := entity.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	accounts, err := uc.repo.ListByRole(role)
	if err != nil {
		return nil, err
	}
	return toAccountResponses(accounts), nil
}

// Update aplica solo los campos presentes y no en blanco; ausencia o blanco
// significa "sin cambio". El cambio de email re-chequea unicidad excluyendo
// la propia cuenta. La escritura es un reemplazo completo del registro.
func (uc *AccountUseCase) Update(id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NotFoundf("User not found with id: '%s'", id)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		account.Name = *in.Name
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		existing, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.Duplicatef("User already exists with email: '%s'", *in.Email)
		}
		account.Email = *in.Email
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}
	if in.IsActive != nil {
		account.IsActive = *in.IsActive
	}

	if err := uc.repo.Save(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// TouchLastLogin marca un login exitoso. Re-lee el registro dentro de la
// misma sección crítica que el resto de las escrituras, para que el Save no
// pise una actualización concurrente hecha durante la verificación del
// password. Si la cuenta quedó desactivada en el interín no persiste nada y
// devuelve el estado fresco para que el caller lo rechace.
func (uc *AccountUseCase) TouchLastLogin(id string) (*dto.AccountResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NotFoundf("User not found with id: '%s'", id)
	}
	if !account.IsActive {
		return toAccountResponse(account), nil
	}
	now := time.Now()
	account.LastLogin = &now
	if err := uc.repo.Save(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Delete elimina una cuenta. Si es ADMINISTRATOR y es el único, la operación
// se rechaza: el sistema siempre conserva al menos un administrador.
func (uc *AccountUseCase) Delete(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.NotFoundf("User not found with id: '%s'", id)
	}
	if account.Role == entity.RoleAdministrator {
		count, err := uc.repo.CountByRole(entity.RoleAdministrator)
		if err != nil {
			return err
		}
		if count <= 1 {
			return domain.Invariant("Cannot delete the last administrator")
		}
	}
	return uc.repo.Delete(id)
}

// ChangeRole cambia el rol de una cuenta. Degradar al único administrador
// se rechaza por la misma invariante que Delete.
func (uc *AccountUseCase) ChangeRole(id, roleName string) (*dto.AccountResponse, error) {
	newRole, err := entity.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NotFoundf("User not found with id: '%s'", id)
	}
	if account.Role == entity.RoleAdministrator && newRole != entity.RoleAdministrator {
		count, err := uc.repo.CountByRole(entity.RoleAdministrator)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, domain.Invariant("Cannot demote the last administrator")
		}
	}
	account.Role = newRole
	if err := uc.repo.Save(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		Name:        a.Name,
		Email:       a.Email,
		Role:        string(a.Role),
		Permissions: a.Role.Permissions(),
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		LastLogin:   a.LastLogin,
	}
}

func toAccountResponses(accounts []*entity.Account) []*dto.AccountResponse {
	out := make([]*dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}
