// Package lifecycle define la máquina de estados del cartucho.
//
// Una única tabla de transiciones alimenta las dos rutas de escritura:
// la validación de operaciones explícitas (Validate/PostState) y la
// derivación del tipo de operación implícita cuando el cartucho se edita
// directamente (InferStatusChange/InferRelocation). Mantenerlas sobre la
// misma tabla evita que validación y auditoría diverjan.
package lifecycle

import (
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

// rule fila de la tabla de transiciones para un tipo de operación.
type rule struct {
	toStatus      string   // estado del cartucho después de aplicar la operación
	keepsLocation bool     // true: la ubicación dada queda en el cartucho; false: se limpia
	validFrom     []string // estados desde los que la operación explícita es legal
	rejectReason  string   // motivo del rechazo cuando el estado actual no está en validFrom
	inferFrom     []string // estados previos que implican esta operación al observar toStatus; nil = cualquiera
}

// table tabla única de transiciones. Consultada por el validador (legalidad)
// y por el motor de inferencia (derivación de tipo).
var table = map[string]rule{
	entity.OpReceipt: {
		toStatus:      entity.StatusInStock,
		keepsLocation: true,
		validFrom:     []string{entity.StatusInStock},
		rejectReason:  "el cartucho ya no está en el almacén",
		inferFrom:     []string{entity.StatusRefilling},
	},
	entity.OpIssue: {
		toStatus:      entity.StatusInUse,
		keepsLocation: true,
		validFrom:     []string{entity.StatusInStock},
		rejectReason:  "el cartucho no está en el almacén",
		inferFrom:     []string{entity.StatusInStock},
	},
	entity.OpReturn: {
		toStatus:      entity.StatusInStock,
		keepsLocation: true,
		validFrom:     []string{entity.StatusInUse},
		rejectReason:  "el cartucho no está en uso",
		inferFrom:     []string{entity.StatusInUse},
	},
	entity.OpRefill: {
		toStatus:      entity.StatusRefilling,
		keepsLocation: false,
		validFrom:     []string{entity.StatusInUse},
		rejectReason:  "el cartucho no está en uso",
		inferFrom:     nil, // cualquier estado previo
	},
	entity.OpDisposal: {
		toStatus:      entity.StatusDisposed,
		keepsLocation: false,
		validFrom:     []string{entity.StatusInStock, entity.StatusInUse, entity.StatusRefilling},
		rejectReason:  "el cartucho ya fue dado de baja",
		inferFrom:     nil, // cualquier estado previo
	},
}

// KnownType reporta si opType es un tipo de operación de la tabla.
func KnownType(opType string) bool {
	_, ok := table[opType]
	return ok
}

// CarriesLocation reporta si el estado admite ubicación. Invariante:
// un cartucho en REFILLING o DISPOSED nunca tiene ubicación.
func CarriesLocation(status string) bool {
	return status == entity.StatusInStock || status == entity.StatusInUse
}

// Validate decide si la operación solicitada es legal para el estado actual
// del cartucho. Pura y determinista; un rechazo no toca ningún estado.
func Validate(currentStatus, opType string) error {
	r, ok := table[opType]
	if !ok {
		return &domain.InvalidOperationError{Type: opType, Reason: "tipo de operación desconocido"}
	}
	for _, s := range r.validFrom {
		if s == currentStatus {
			return nil
		}
	}
	return &domain.InvalidOperationError{Type: opType, Reason: r.rejectReason}
}

// PostState calcula el par (estado, ubicación) resultante de aplicar la
// operación. Para REFILL y DISPOSAL la ubicación se descarta.
func PostState(opType string, locationID *string) (status string, postLocation *string) {
	r := table[opType]
	if r.keepsLocation {
		return r.toStatus, locationID
	}
	return r.toStatus, nil
}

// InferStatusChange deriva el tipo de operación implícita en un cambio de
// estado observado en una edición directa. Devuelve false para transiciones
// no modeladas: se omiten en silencio, no son un error.
func InferStatusChange(oldStatus, newStatus string) (string, bool) {
	if oldStatus == newStatus {
		return "", false
	}
	for opType, r := range table {
		if r.toStatus != newStatus {
			continue
		}
		if r.inferFrom == nil {
			return opType, true
		}
		for _, s := range r.inferFrom {
			if s == oldStatus {
				return opType, true
			}
		}
	}
	return "", false
}

// InferRelocation deriva el tipo de operación para un cambio de ubicación sin
// cambio de estado. Solo IN_STOCK y IN_USE son reubicables: los demás estados
// no llevan ubicación, así que un traslado puro no es registrable.
func InferRelocation(status string) (string, bool) {
	var fallback string
	candidates := 0
	for opType, r := range table {
		if !r.keepsLocation || r.toStatus != status {
			continue
		}
		// Con más de una candidata (RECEIPT y RETURN terminan en IN_STOCK)
		// gana la que también es legal desde el propio estado.
		for _, s := range r.validFrom {
			if s == status {
				return opType, true
			}
		}
		fallback = opType
		candidates++
	}
	if candidates == 1 {
		return fallback, true
	}
	return "", false
}
