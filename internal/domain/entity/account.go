package entity

import (
	"strings"
	"time"
)

// Role rol de una cuenta. La jerarquía es plana: cada operación declara explícitamente
// qué roles admite.
type Role string

// Roles válidos para Account.
const (
	RoleAdmin     Role = "ADMIN"
	RoleHRManager Role = "HR_MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
)

// ParseRole normaliza s a un Role conocido.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleHRManager, RoleEmployee:
		return r, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// Account credenciales de acceso. Se crea en el registro y se elimina en cascada con su Employee.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca el texto plano
	Role         Role   // inmutable tras la creación
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity identidad resuelta a partir de un token válido.
type Identity struct {
	AccountID  string
	EmployeeID string // vacío si la cuenta no tiene empleado vinculado
	Role       Role
}
