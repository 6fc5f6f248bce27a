package auth

import (
	"errors"

	"github.com/jhoicas/rbac-api/internal/application/dto"
	"github.com/jhoicas/rbac-api/internal/application/usecase"
	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// Mensajes exactos de autenticación. Username desconocido y password
// incorrecto comparten mensaje; cuenta desactivada usa uno distinto.
const (
	msgInvalidCredentials = "Invalid username or password"
	msgAccountDeactivated = "Account is deactivated"
	msgLoginSuccessful    = "Login successful"
)

// AuthUseCase casos de uso de autenticación: login y registro público.
// La creación del registro delega en AccountUseCase para compartir la
// sección crítica de unicidad con la creación administrativa.
type AuthUseCase struct {
	repo     repository.AccountRepository
	accounts *usecase.AccountUseCase
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.AccountRepository, accounts *usecase.AccountUseCase) *AuthUseCase {
	return &AuthUseCase{repo: repo, accounts: accounts}
}

// Login verifica username/password (bcrypt), exige cuenta activa y actualiza
// last_login. Devuelve el resumen de la cuenta con los permisos vigentes del
// catálogo; no emite ningún credential.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}
	if !account.IsActive {
		return nil, domain.Unauthenticated(msgAccountDeactivated)
	}

	// La verificación bcrypt es lenta; el registro leído arriba puede estar
	// desactualizado. La escritura de last_login se hace con una re-lectura
	// dentro de la sección crítica de AccountUseCase, nunca con este registro.
	fresh, err := uc.accounts.TouchLastLogin(account.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthenticated(msgInvalidCredentials)
		}
		return nil, err
	}
	if !fresh.IsActive {
		return nil, domain.Unauthenticated(msgAccountDeactivated)
	}

	return &dto.LoginResponse{
		ID:          fresh.ID,
		Username:    fresh.Username,
		Name:        fresh.Name,
		Email:       fresh.Email,
		Role:        fresh.Role,
		Permissions: fresh.Permissions,
		Message:     msgLoginSuccessful,
	}, nil
}

// Register crea una cuenta pública. El rol siempre queda forzado a VIEWER,
// sin importar lo que venga en la petición.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.AccountResponse, error) {
	return uc.accounts.Create(dto.CreateAccountRequest{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
	})
}
