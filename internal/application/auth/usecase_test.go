package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rbac-api/internal/application/auth"
	"github.com/jhoicas/rbac-api/internal/application/dto"
	"github.com/jhoicas/rbac-api/internal/application/usecase"
	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
	"github.com/jhoicas/rbac-api/internal/infrastructure/memory"
)

func newAuthUC() (*auth.AuthUseCase, *usecase.AccountUseCase, repository.AccountRepository) {
	repo := memory.NewAccountRepository()
	accounts := usecase.NewAccountUseCase(repo)
	return auth.NewAuthUseCase(repo, accounts), accounts, repo
}

func registerAlice(t *testing.T, uc *auth.AuthUseCase) *dto.AccountResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Username: "alice",
		Password: "password123",
		Name:     "Alice",
		Email:    "a@x.com",
	})
	require.NoError(t, err)
	return out
}

func TestRegister_RolForzadoViewer(t *testing.T) {
	uc, _, _ := newAuthUC()
	out := registerAlice(t, uc)

	assert.Equal(t, "VIEWER", out.Role)
	assert.True(t, out.IsActive)
	assert.Nil(t, out.LastLogin)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _, _ := newAuthUC()
	registerAlice(t, uc)

	_, err := uc.Register(dto.RegisterRequest{
		Username: "alice", Password: "password123", Name: "Otra", Email: "otro@x.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"registrar el mismo username dos veces falla aunque el email cambie")
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _, repo := newAuthUC()
	created := registerAlice(t, uc)

	before := time.Now()
	out, err := uc.Login(dto.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, out.ID)
	assert.Equal(t, "Login successful", out.Message)
	assert.Equal(t, entity.RoleViewer.Permissions(), out.Permissions,
		"los permisos se derivan en vivo del rol de la cuenta")

	// last_login queda persistido.
	stored, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.False(t, stored.LastLogin.Before(before))
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _, _ := newAuthUC()
	registerAlice(t, uc)

	_, err := uc.Login(dto.LoginRequest{Username: "alice", Password: "incorrecto"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestLogin_UsernameDesconocido_MismoMensaje(t *testing.T) {
	uc, _, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: "password123"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "Invalid username or password", err.Error(),
		"username desconocido y password incorrecto comparten mensaje")
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	uc, accounts, _ := newAuthUC()
	created := registerAlice(t, uc)

	inactive := false
	_, err := accounts.Update(created.ID, dto.UpdateAccountRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "alice", Password: "password123"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "Account is deactivated", err.Error())
}

// interceptedRepo dispara un callback justo después de GetByUsername, para
// simular una escritura concurrente que aterriza durante la ventana lenta de
// la verificación bcrypt del login.
type interceptedRepo struct {
	repository.AccountRepository
	afterGetByUsername func()
}

func (r *interceptedRepo) GetByUsername(username string) (*entity.Account, error) {
	account, err := r.AccountRepository.GetByUsername(username)
	if r.afterGetByUsername != nil {
		r.afterGetByUsername()
	}
	return account, err
}

func TestLogin_DesactivacionConcurrenteNoSePierde(t *testing.T) {
	repo := memory.NewAccountRepository()
	accounts := usecase.NewAccountUseCase(repo)
	intercepted := &interceptedRepo{AccountRepository: repo}
	uc := auth.NewAuthUseCase(intercepted, accounts)

	created := registerAlice(t, uc)

	// La desactivación llega después de que el login ya leyó la cuenta.
	intercepted.afterGetByUsername = func() {
		inactive := false
		_, err := accounts.Update(created.ID, dto.UpdateAccountRequest{IsActive: &inactive})
		require.NoError(t, err)
	}

	_, err := uc.Login(dto.LoginRequest{Username: "alice", Password: "password123"})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "Account is deactivated", err.Error())

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive,
		"la desactivación no debe perderse por la escritura de last_login")
	assert.Nil(t, stored.LastLogin,
		"una cuenta desactivada no registra last_login")
}

func TestLogin_CambioDeRolConcurrenteNoSePierde(t *testing.T) {
	repo := memory.NewAccountRepository()
	accounts := usecase.NewAccountUseCase(repo)
	intercepted := &interceptedRepo{AccountRepository: repo}
	uc := auth.NewAuthUseCase(intercepted, accounts)

	created := registerAlice(t, uc)

	intercepted.afterGetByUsername = func() {
		_, err := accounts.ChangeRole(created.ID, "MANAGER")
		require.NoError(t, err)
	}

	out, err := uc.Login(dto.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	// La respuesta y el registro reflejan el rol nuevo, no el leído al inicio.
	assert.Equal(t, "MANAGER", out.Role)
	assert.Equal(t, entity.RoleManager.Permissions(), out.Permissions)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, stored.Role)
	require.NotNil(t, stored.LastLogin)
}

func TestLogin_NoRevelaPasswordHash(t *testing.T) {
	uc, _, _ := newAuthUC()
	registerAlice(t, uc)

	out, err := uc.Login(dto.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	// El DTO de respuesta no tiene campo de password; este test documenta
	// que el resumen expone solo identidad y permisos.
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "a@x.com", out.Email)
}
