package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrCartridgeNotFound     = errors.New("cartucho no encontrado")
	ErrLocationNotFound      = errors.New("ubicación no encontrada")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrOperationNotFound     = errors.New("operación no encontrada")
	ErrDuplicateSerial       = errors.New("el número de serie ya está registrado")
	ErrDuplicateUsername     = errors.New("el nombre de usuario ya está registrado")
	ErrDuplicateLocation     = errors.New("el nombre de la ubicación ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrLocationHasCartridges = errors.New("la ubicación tiene cartuchos asociados")
)

// InvalidOperationError rechazo del validador de transiciones: la operación
// solicitada no es legal para el estado actual del cartucho.
type InvalidOperationError struct {
	Type   string // tipo de operación solicitada
	Reason string // motivo del rechazo
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("operación %s inválida: %s", e.Type, e.Reason)
}

// IsInvalidOperation reporta si err es un rechazo del validador.
func IsInvalidOperation(err error) bool {
	var ioe *InvalidOperationError
	return errors.As(err, &ioe)
}
