package dto

import "time"

// RegisterRequest entrada para registro: crea la cuenta y su ficha de empleado.
type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role,omitempty"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Position     string  `json:"position,omitempty"`
	DepartmentID *string `json:"departmentId,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse salida de una cuenta (sin password) con su empleado vinculado.
type AccountResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	Employee  *EmployeeResponse `json:"employee"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AuthResponse salida de register/login.
type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    AccountResponse `json:"user"`
}
