package entity

import "time"

// Tipos de operación sobre cartuchos.
const (
	OpReceipt  = "RECEIPT"  // ingreso al almacén
	OpIssue    = "ISSUE"    // entrega a un objeto
	OpReturn   = "RETURN"   // devolución al almacén
	OpRefill   = "REFILL"   // envío a recarga
	OpDisposal = "DISPOSAL" // baja definitiva
)

// OpDescription descripción legible de cada tipo de operación.
func OpDescription(opType string) string {
	switch opType {
	case OpReceipt:
		return "Recepción"
	case OpIssue:
		return "Entrega"
	case OpReturn:
		return "Devolución"
	case OpRefill:
		return "Recarga"
	case OpDisposal:
		return "Baja"
	}
	return opType
}

// Operation registro de auditoría inmutable de un evento del ciclo de vida.
// Se crea únicamente como efecto de una mutación de estado/ubicación del
// cartucho; nunca se actualiza ni se borra.
//
// CartridgeModel y CartridgeSerial se desnormalizan al momento de escritura
// para que el historial siga siendo legible después de borrar el cartucho.
type Operation struct {
	ID              string
	Type            string // RECEIPT, ISSUE, RETURN, REFILL, DISPOSAL
	Count           int    // informativo, siempre >= 1
	CartridgeID     string
	CartridgeModel  string
	CartridgeSerial string
	LocationID      *string // destino u origen; nil si no aplica
	PerformedByID   string
	PerformedBy     string // username del ejecutor
	OperationDate   time.Time
	Notes           string
}
