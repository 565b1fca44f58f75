package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInactiveAccount    = errors.New("cuenta inactiva")
)

// Error es un error de dominio con mensaje para el usuario. Kind es uno de los
// sentinels de arriba; errors.Is(err, Kind) es verdadero.
type Error struct {
	Kind    error
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

// Is permite errors.Is(err, domain.ErrInvalidInput) sobre errores tipados.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap devuelve el sentinel.
func (e *Error) Unwrap() error { return e.Kind }

// Validation crea un error de validación (400).
func Validation(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// ValidationField crea un error de validación asociado a un campo.
func ValidationField(field, msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg, Field: field}
}

// Forbidden crea un error de autorización (403) con mensaje.
func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

// NotFound crea un error 404 con mensaje.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Conflict crea un error 409 con mensaje.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Duplicate crea un error de unicidad con mensaje.
func Duplicate(msg string) error {
	return &Error{Kind: ErrDuplicate, Message: msg}
}

// FieldOf devuelve el campo asociado al error, si lo hay.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
