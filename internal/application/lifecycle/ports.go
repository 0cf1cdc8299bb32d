package lifecycle

import (
	"context"

	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ciclo
// de vida: la mutación del cartucho y su registro de auditoría se confirman
// juntos o no se confirma ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cartridgeRepo repository.CartridgeRepository,
		operationRepo repository.OperationRepository,
		locationRepo repository.LocationRepository,
	) error) error
}
