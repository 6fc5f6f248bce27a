package entity

import "errors"

// Role es un nivel de privilegio cerrado del sistema. El catálogo (nivel +
// permisos por rol) está compilado en el binario y nunca muta en runtime:
// agregar un rol o permiso es un cambio de código, no una migración de datos.
type Role string

const (
	RoleAdministrator  Role = "ADMINISTRATOR"
	RoleManager        Role = "MANAGER"
	RoleWarehouseClerk Role = "WAREHOUSE_CLERK"
	RoleAuditor        Role = "AUDITOR"
	RoleViewer         Role = "VIEWER"
)

// ErrInvalidRole se devuelve al parsear un rol que no existe en el catálogo.
var ErrInvalidRole = errors.New("rol inválido")

// allRoles ordenado por nivel descendente (más privilegiado primero).
var allRoles = []Role{
	RoleAdministrator,
	RoleManager,
	RoleWarehouseClerk,
	RoleAuditor,
	RoleViewer,
}

var roleLevels = map[Role]int{
	RoleAdministrator:  5,
	RoleManager:        4,
	RoleWarehouseClerk: 3,
	RoleAuditor:        2,
	RoleViewer:         1,
}

var rolePermissions = map[Role][]string{
	RoleAdministrator: {
		"users.create", "users.read", "users.update", "users.delete",
		"transfers.create", "transfers.read", "transfers.update", "transfers.delete", "transfers.approve",
		"inventory.read", "inventory.update",
		"reports.view", "reports.export",
		"audit.view",
		"settings.manage",
	},
	RoleManager: {
		"users.read",
		"transfers.create", "transfers.read", "transfers.update", "transfers.approve",
		"inventory.read", "inventory.update",
		"reports.view", "reports.export",
		"audit.view",
	},
	RoleWarehouseClerk: {
		"transfers.create", "transfers.read",
		"inventory.read",
		"reports.view",
	},
	RoleAuditor: {
		"users.read",
		"transfers.read",
		"inventory.read",
		"reports.view",
		"audit.view",
	},
	RoleViewer: {
		"inventory.read",
	},
}

// AllRoles devuelve los roles del catálogo ordenados por nivel descendente.
// Devuelve una copia: el slice interno no debe mutarse.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole valida un string contra el catálogo (case-sensitive, ej. "MANAGER").
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid indica si el rol existe en el catálogo.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level devuelve el nivel ordinal del rol (mayor = más privilegiado).
// Un rol fuera del catálogo devuelve 0.
func (r Role) Level() int {
	return roleLevels[r]
}

// Permissions devuelve la lista de permisos del rol. Devuelve una copia
// para que el catálogo permanezca inmutable.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission es un test de pertenencia puro sobre el set fijo del rol.
func (r Role) HasPermission(permission string) bool {
	for _, p := range rolePermissions[r] {
		if p == permission {
			return true
		}
	}
	return false
}
