package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrEmployeeNotFound   = errors.New("empleado no encontrado")
	ErrDepartmentNotFound = errors.New("departamento no encontrado")

	// Ledger de asistencia.
	ErrAlreadyCheckedIn = errors.New("ya registró entrada hoy")
	ErrNotCheckedIn     = errors.New("no hay registro de entrada para hoy")
)
