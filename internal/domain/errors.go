package domain

import (
	"errors"
	"fmt"
)

// Tipos de error del dominio (sin dependencias externas).
// Cada operación de los use cases devuelve uno de estos tipos; la capa HTTP
// los traduce a status codes estables.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUnauthenticated = errors.New("autenticación fallida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrInvariant       = errors.New("invariante violada")
)

// Error combina un tipo sentinel con el mensaje visible al usuario.
// errors.Is(err, domain.ErrNotFound) etc. funciona vía Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// NotFoundf construye un error NotFound con mensaje formateado.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated construye un error de credenciales con mensaje exacto.
// Username desconocido y password incorrecto comparten mensaje para no
// permitir enumeración de usuarios.
func Unauthenticated(message string) error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

// Duplicatef construye un error de colisión de username/email.
func Duplicatef(format string, args ...any) error {
	return &Error{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

// Invariant construye un error de regla de negocio (ej. último administrador).
func Invariant(message string) error {
	return &Error{Kind: ErrInvariant, Message: message}
}
