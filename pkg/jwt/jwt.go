package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token. El de refresco solo sirve para emitir un nuevo par.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType se devuelve al usar un token de refresco como de acceso (o viceversa).
var ErrWrongTokenType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el middleware decida sin consultar la DB.
// CompanyID solo se llena para tutores empresariales.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role"` // ESTUDIANTE | DOCENTE | TUTOR | COORDINADOR
	Type      string `json:"typ"`
}

// Generate genera un token de acceso firmado que incluye userID, companyID y role.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, TypeAccess, userID, companyID, role, issuer, expMinutes)
}

// GenerateRefresh genera un token de refresco de larga duración.
func GenerateRefresh(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, TypeRefresh, userID, companyID, role, issuer, expMinutes)
}

func sign(secret, typ, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		Type:      typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de acceso y devuelve userID, companyID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de refresco.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	c, err := parse(secret, tokenString, TypeAccess)
	if err != nil {
		return "", "", "", err
	}
	return c.UserID, c.CompanyID, c.Role, nil
}

// ParseRefresh valida un token de refresco y devuelve sus claims.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	return parse(secret, tokenString, TypeRefresh)
}

func parse(secret, tokenString, want string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
