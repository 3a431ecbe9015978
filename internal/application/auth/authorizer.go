package auth

import (
	"fmt"
	"slices"

	"github.com/jhoicas/hr-erp-api/internal/domain"
	"github.com/jhoicas/hr-erp-api/internal/domain/entity"
)

// Authorize devuelve nil si el rol de la identidad está en allowed (o allowed está vacío).
// Jerarquía plana: ADMIN no hereda permisos de HR_MANAGER, cada ruta declara su conjunto.
func Authorize(id entity.Identity, allowed ...entity.Role) error {
	if len(allowed) == 0 || slices.Contains(allowed, id.Role) {
		return nil
	}
	return fmt.Errorf("%w: rol %s no autorizado", domain.ErrForbidden, id.Role)
}

// Conjuntos de roles usados por las rutas.
var (
	Managers  = []entity.Role{entity.RoleAdmin, entity.RoleHRManager}
	AdminOnly = []entity.Role{entity.RoleAdmin}
)

// CanActFor indica si la identidad puede operar sobre employeeID: RR. HH. y admin sobre
// cualquiera, un EMPLOYEE solo sobre sí mismo.
func CanActFor(id entity.Identity, employeeID string) bool {
	if Authorize(id, Managers...) == nil {
		return true
	}
	return id.EmployeeID != "" && id.EmployeeID == employeeID
}
