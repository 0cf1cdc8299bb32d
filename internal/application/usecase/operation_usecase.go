package usecase

import (
	"time"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// OperationUseCase superficie de consulta del registro de operaciones.
// Solo lectura: las operaciones se crean exclusivamente como efecto de una
// mutación de cartucho.
type OperationUseCase struct {
	operationRepo repository.OperationRepository
	locationRepo  repository.LocationRepository
}

// NewOperationUseCase construye el caso de uso.
func NewOperationUseCase(
	operationRepo repository.OperationRepository,
	locationRepo repository.LocationRepository,
) *OperationUseCase {
	return &OperationUseCase{
		operationRepo: operationRepo,
		locationRepo:  locationRepo,
	}
}

// GetByID obtiene una operación por ID.
func (uc *OperationUseCase) GetByID(id string) (*dto.OperationResponse, error) {
	op, err := uc.operationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrOperationNotFound
	}
	return uc.toResponse(op, map[string]string{}), nil
}

// List lista operaciones con paginación (más recientes primero).
func (uc *OperationUseCase) List(page dto.PageRequest) (*dto.OperationListResponse, error) {
	page.DefaultPage()
	list, err := uc.operationRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// ListByCartridge lista las operaciones de un cartucho. No exige que el
// cartucho siga existiendo: el historial de un cartucho borrado sigue siendo
// consultable por su id.
func (uc *OperationUseCase) ListByCartridge(cartridgeID string, page dto.PageRequest) (*dto.OperationListResponse, error) {
	page.DefaultPage()
	list, err := uc.operationRepo.ListByCartridge(cartridgeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// ListByLocation lista las operaciones asociadas a una ubicación.
func (uc *OperationUseCase) ListByLocation(locationID string, page dto.PageRequest) (*dto.OperationListResponse, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	page.DefaultPage()
	list, err := uc.operationRepo.ListByLocation(locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// ListByType lista operaciones de un tipo dado.
func (uc *OperationUseCase) ListByType(opType string, page dto.PageRequest) (*dto.OperationListResponse, error) {
	switch opType {
	case entity.OpReceipt, entity.OpIssue, entity.OpReturn, entity.OpRefill, entity.OpDisposal:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.operationRepo.ListByType(opType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// ListByDateRange lista operaciones dentro de un rango de fechas.
func (uc *OperationUseCase) ListByDateRange(from, to time.Time, page dto.PageRequest) (*dto.OperationListResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.operationRepo.ListByDateRange(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// CountByTypeAndDateRange cuenta operaciones de un tipo en un rango de fechas.
func (uc *OperationUseCase) CountByTypeAndDateRange(opType string, from, to time.Time) (int64, error) {
	return uc.operationRepo.CountByTypeAndDateRange(opType, from, to)
}

func (uc *OperationUseCase) toListResponse(list []*entity.Operation, page dto.PageRequest) *dto.OperationListResponse {
	names := map[string]string{}
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		items = append(items, *uc.toResponse(op, names))
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

// toResponse arma la respuesta resolviendo el nombre de la ubicación con un
// cache por llamada. Modelo y serial del cartucho salen de la propia fila
// (desnormalizados al escribir), así que no dependen de que el cartucho exista.
func (uc *OperationUseCase) toResponse(op *entity.Operation, names map[string]string) *dto.OperationResponse {
	resp := &dto.OperationResponse{
		ID:              op.ID,
		Type:            op.Type,
		Count:           op.Count,
		CartridgeID:     op.CartridgeID,
		CartridgeModel:  op.CartridgeModel,
		CartridgeSerial: op.CartridgeSerial,
		LocationID:      op.LocationID,
		PerformedByID:   op.PerformedByID,
		PerformedBy:     op.PerformedBy,
		OperationDate:   op.OperationDate,
		Notes:           op.Notes,
	}
	if op.LocationID != nil {
		name, ok := names[*op.LocationID]
		if !ok {
			if location, err := uc.locationRepo.GetByID(*op.LocationID); err == nil && location != nil {
				name = location.Name
			}
			names[*op.LocationID] = name
		}
		resp.LocationName = name
	}
	return resp
}
