package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Motivos de rechazo. Ambos terminan en 401, pero se distinguen en los logs.
var (
	ErrExpired = errors.New("jwt: token expirado")
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el RBAC decida sin consultar la DB; un cambio de rol
// solo se refleja tras un nuevo login.
type Claims struct {
	jwt.RegisteredClaims
	AccountID  string `json:"account_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"` // "ADMIN" | "HR_MANAGER" | "EMPLOYEE"
}

// Subject datos de identidad que se firman en el token.
type Subject struct {
	AccountID  string
	EmployeeID string
	Role       string
}

// Generate genera un token HS256 firmado, válido durante ttl a partir de now.
func Generate(secret string, sub Subject, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID:  sub.AccountID,
		EmployeeID: sub.EmployeeID,
		Role:       sub.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración respecto de now y devuelve los claims.
// Los errores envuelven ErrExpired o ErrInvalid.
func Parse(secret, tokenString string, now time.Time) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: claims inválidos", ErrInvalid)
	}
	if claims.AccountID == "" {
		return nil, fmt.Errorf("%w: account_id ausente", ErrInvalid)
	}
	return claims, nil
}
