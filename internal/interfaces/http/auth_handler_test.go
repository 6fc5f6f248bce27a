package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rbac-api/internal/application/dto"
)

func TestRegister_Retorna201ConRolViewer(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": "alice",
		"password": "password123",
		"name":     "Alice",
		"email":    "a@x.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    dto.AccountResponse `json:"data"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.Equal(t, "VIEWER", body.Data.Role, "el registro público siempre asigna VIEWER")
}

func TestRegister_PasswordCorto_Retorna400(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": "alice",
		"password": "corto",
		"name":     "Alice",
		"email":    "a@x.com",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_Duplicado_Retorna409(t *testing.T) {
	app, uc := buildTestApp()
	mustCreate(t, uc, "alice", "a@x.com", "")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", fiber.Map{
		"username": "alice",
		"password": "password123",
		"name":     "Otra",
		"email":    "otra@x.com",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_Retorna200ConPermisos(t *testing.T) {
	app, uc := buildTestApp()
	mustCreate(t, uc, "manager", "m@x.com", "MANAGER")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "manager",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.LoginResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "manager", body.Username)
	assert.Equal(t, "MANAGER", body.Role)
	assert.Equal(t, "Login successful", body.Message)
	assert.Contains(t, body.Permissions, "transfers.approve")
	assert.NotContains(t, body.Permissions, "users.create")
}

func TestLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	app, uc := buildTestApp()
	mustCreate(t, uc, "alice", "a@x.com", "")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "alice",
		"password": "incorrecto",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
	assert.Equal(t, "Invalid username or password", body.Message)
}

func TestLogin_CuentaDesactivada_Retorna401ConMensajeDistinto(t *testing.T) {
	app, uc := buildTestApp()
	created := mustCreate(t, uc, "alice", "a@x.com", "")

	inactive := false
	_, err := uc.Update(created.ID, dto.UpdateAccountRequest{IsActive: &inactive})
	require.NoError(t, err)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Account is deactivated", body.Message)
}

func TestLogout_RetornaAck(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ApiResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Logged out successfully", body.Message)
}

func TestAuthStatus(t *testing.T) {
	app, _ := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/auth/status", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
