package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/rbac-api/internal/application/dto"
	"github.com/jhoicas/rbac-api/internal/application/usecase"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
)

// AccountHandler maneja las peticiones HTTP del ciclo de vida de cuentas.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas (created_at descendente)
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.ApiResponse
// @Router       /api/users [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener cuenta por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.ApiResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByUsername godoc
// @Summary      Obtener cuenta por username
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username exacto"
// @Success      200  {object}  dto.ApiResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/username/{username} [get]
func (h *AccountHandler) GetByUsername(c *fiber.Ctx) error {
	out, err := h.uc.GetByUsername(c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Create godoc
// @Summary      Crear cuenta (rol opcional, default VIEWER)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.ApiResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username, password y email son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("User created successfully", out))
}

// Update godoc
// @Summary      Actualizar cuenta (campos opcionales, blanco = sin cambio)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ApiResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage("User updated successfully", out))
}

// Delete godoc
// @Summary      Eliminar cuenta
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.ApiResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage("User deleted successfully", nil))
}

// ChangeRole godoc
// @Summary      Cambiar rol de una cuenta
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.ChangeRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.ApiResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *AccountHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}
	out, err := h.uc.ChangeRole(c.Params("id"), in.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OKMessage("Role updated successfully", out))
}

// Search godoc
// @Summary      Buscar cuentas por name o username (case-insensitive)
// @Tags         users
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar"
// @Success      200  {object}  dto.ApiResponse
// @Router       /api/users/search [get]
func (h *AccountHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListByRole godoc
// @Summary      Listar cuentas por rol
// @Tags         users
// @Produce      json
// @Param        role  path  string  true  "Rol (ej. MANAGER)"
// @Success      200   {object}  dto.ApiResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/role/{role} [get]
func (h *AccountHandler) ListByRole(c *fiber.Ctx) error {
	out, err := h.uc.ListByRole(c.Params("role"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListRoles godoc
// @Summary      Enumerar el catálogo de roles
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.ApiResponse
// @Router       /api/users/roles [get]
func (h *AccountHandler) ListRoles(c *fiber.Ctx) error {
	roles := entity.AllRoles()
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{
			Name:        string(r),
			Level:       r.Level(),
			Permissions: r.Permissions(),
		})
	}
	return c.JSON(dto.OK(out))
}
