package repository

import (
	"time"

	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

// OperationRepository define el puerto de persistencia para el registro de
// operaciones. Solo inserción y consulta: las operaciones son inmutables.
type OperationRepository interface {
	Create(op *entity.Operation) error
	GetByID(id string) (*entity.Operation, error)
	List(limit, offset int) ([]*entity.Operation, error)
	ListByCartridge(cartridgeID string, limit, offset int) ([]*entity.Operation, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.Operation, error)
	ListByType(opType string, limit, offset int) ([]*entity.Operation, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Operation, error)
	CountByTypeAndDateRange(opType string, from, to time.Time) (int64, error)
}
