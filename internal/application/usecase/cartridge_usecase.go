package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	applifecycle "github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	domlifecycle "github.com/jhoicas/Cartuchos-api/internal/domain/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// CartridgeUseCase casos de uso de cartuchos: CRUD, consultas y la ruta de
// edición directa que delega la auditoría inferida al motor de ciclo de vida.
type CartridgeUseCase struct {
	txRunner      applifecycle.TxRunner
	cartridgeRepo repository.CartridgeRepository
	locationRepo  repository.LocationRepository
	userRepo      repository.UserRepository
	lifecycleUC   *applifecycle.UseCase
}

// NewCartridgeUseCase construye el caso de uso.
func NewCartridgeUseCase(
	txRunner applifecycle.TxRunner,
	cartridgeRepo repository.CartridgeRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	lifecycleUC *applifecycle.UseCase,
) *CartridgeUseCase {
	return &CartridgeUseCase{
		txRunner:      txRunner,
		cartridgeRepo: cartridgeRepo,
		locationRepo:  locationRepo,
		userRepo:      userRepo,
		lifecycleUC:   lifecycleUC,
	}
}

// Create da de alta un cartucho en IN_STOCK y registra best-effort la
// operación de recepción inicial.
func (uc *CartridgeUseCase) Create(ctx context.Context, in dto.CreateCartridgeRequest, username string) (*dto.CartridgeResponse, error) {
	if in.Model == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SerialNumber != "" {
		exists, err := uc.cartridgeRepo.ExistsBySerialNumber(in.SerialNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateSerial
		}
	}

	var location *entity.Location
	if in.CurrentLocationID != nil {
		var err error
		location, err = uc.locationRepo.GetByID(*in.CurrentLocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrLocationNotFound
		}
	}

	cartridge := &entity.Cartridge{
		ID:                 uuid.New().String(),
		Model:              in.Model,
		SerialNumber:       in.SerialNumber,
		Brand:              in.Brand,
		PartNumber:         in.PartNumber,
		Color:              in.Color,
		CompatiblePrinters: in.CompatiblePrinters,
		ResourcePages:      in.ResourcePages,
		Description:        in.Description,
		Status:             entity.StatusInStock,
		CurrentLocationID:  in.CurrentLocationID,
		CreatedAt:          time.Now(),
	}
	if err := uc.cartridgeRepo.Create(cartridge); err != nil {
		return nil, err
	}

	// Recepción inicial: si falla, el alta ya está confirmada y no se deshace.
	_, err := uc.lifecycleUC.Perform(ctx, applifecycle.PerformInput{
		Type:        entity.OpReceipt,
		Count:       1,
		CartridgeID: cartridge.ID,
		LocationID:  in.CurrentLocationID,
		Notes:       "Ingreso inicial del cartucho al almacén",
	}, username)
	if err != nil {
		log.Error().Err(err).Str("cartridge_id", cartridge.ID).
			Msg("fallo al registrar la recepción inicial")
	}

	return uc.toResponse(cartridge, location), nil
}

// Update aplica una edición directa (ruta implícita): persiste atributos,
// estado y ubicación dentro de una transacción y luego delega en el motor de
// inferencia el registro best-effort de la operación implicada.
func (uc *CartridgeUseCase) Update(ctx context.Context, id string, in dto.UpdateCartridgeRequest, username string) (*dto.EditCartridgeResult, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	switch in.Status {
	case entity.StatusInStock, entity.StatusInUse, entity.StatusRefilling, entity.StatusDisposed:
	default:
		return nil, domain.ErrInvalidInput
	}

	var newLocation *entity.Location
	if in.CurrentLocationID != nil {
		newLocation, err = uc.locationRepo.GetByID(*in.CurrentLocationID)
		if err != nil {
			return nil, err
		}
		if newLocation == nil {
			return nil, domain.ErrLocationNotFound
		}
	}

	var (
		cartridge *entity.Cartridge
		oldStatus string
		oldLocID  *string
	)
	err = uc.txRunner.Run(ctx, func(
		cartridgeRepo repository.CartridgeRepository,
		_ repository.OperationRepository,
		_ repository.LocationRepository,
	) error {
		cartridge, err = cartridgeRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if cartridge == nil {
			return domain.ErrCartridgeNotFound
		}
		oldStatus = cartridge.Status
		oldLocID = cartridge.CurrentLocationID

		if in.SerialNumber != "" && in.SerialNumber != cartridge.SerialNumber {
			exists, err := cartridgeRepo.ExistsBySerialNumber(in.SerialNumber)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateSerial
			}
		}

		cartridge.Model = in.Model
		cartridge.SerialNumber = in.SerialNumber
		cartridge.Brand = in.Brand
		cartridge.PartNumber = in.PartNumber
		cartridge.Color = in.Color
		cartridge.CompatiblePrinters = in.CompatiblePrinters
		cartridge.ResourcePages = in.ResourcePages
		cartridge.Description = in.Description
		cartridge.Status = in.Status
		// Invariante: REFILLING y DISPOSED no llevan ubicación.
		if domlifecycle.CarriesLocation(in.Status) {
			cartridge.CurrentLocationID = in.CurrentLocationID
		} else {
			cartridge.CurrentLocationID = nil
		}
		now := time.Now()
		cartridge.UpdatedAt = now
		return cartridgeRepo.Update(cartridge)
	})
	if err != nil {
		return nil, err
	}

	// La edición ya está confirmada; de aquí en adelante todo es best-effort.
	var oldLocation *entity.Location
	if oldLocID != nil {
		oldLocation, _ = uc.locationRepo.GetByID(*oldLocID)
	}
	var effectiveNewLocation *entity.Location
	if cartridge.CurrentLocationID != nil {
		effectiveNewLocation = newLocation
	}

	inferredOp, auditStatus := uc.lifecycleUC.LogInferred(applifecycle.InferredChange{
		Cartridge:   cartridge,
		OldStatus:   oldStatus,
		OldLocation: oldLocation,
		NewLocation: effectiveNewLocation,
	}, user)

	return &dto.EditCartridgeResult{
		Cartridge:         *uc.toResponse(cartridge, effectiveNewLocation),
		AuditStatus:       auditStatus,
		InferredOperation: inferredOp,
	}, nil
}

// Delete da de baja el cartucho (operación DISPOSAL) y elimina su fila.
func (uc *CartridgeUseCase) Delete(ctx context.Context, id, username string) error {
	return uc.lifecycleUC.Dispose(ctx, id, username)
}

// GetByID obtiene un cartucho por ID.
func (uc *CartridgeUseCase) GetByID(id string) (*dto.CartridgeResponse, error) {
	cartridge, err := uc.cartridgeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cartridge == nil {
		return nil, domain.ErrCartridgeNotFound
	}
	return uc.toResponse(cartridge, uc.lookupLocation(cartridge.CurrentLocationID)), nil
}

// GetBySerialNumber obtiene un cartucho por su número de serie.
func (uc *CartridgeUseCase) GetBySerialNumber(serial string) (*dto.CartridgeResponse, error) {
	cartridge, err := uc.cartridgeRepo.GetBySerialNumber(serial)
	if err != nil {
		return nil, err
	}
	if cartridge == nil {
		return nil, domain.ErrCartridgeNotFound
	}
	return uc.toResponse(cartridge, uc.lookupLocation(cartridge.CurrentLocationID)), nil
}

// List lista cartuchos con paginación.
func (uc *CartridgeUseCase) List(page dto.PageRequest) (*dto.CartridgeListResponse, error) {
	page.DefaultPage()
	list, err := uc.cartridgeRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// Search busca cartuchos por modelo o número de serie.
func (uc *CartridgeUseCase) Search(query string, page dto.PageRequest) (*dto.CartridgeListResponse, error) {
	page.DefaultPage()
	list, err := uc.cartridgeRepo.Search(query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(list, page), nil
}

// ListByStatus lista cartuchos en un estado dado.
func (uc *CartridgeUseCase) ListByStatus(status string) ([]dto.CartridgeResponse, error) {
	switch status {
	case entity.StatusInStock, entity.StatusInUse, entity.StatusRefilling, entity.StatusDisposed:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.cartridgeRepo.ListByStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(list), nil
}

// ListByLocation lista los cartuchos actualmente en una ubicación.
func (uc *CartridgeUseCase) ListByLocation(locationID string) ([]dto.CartridgeResponse, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	list, err := uc.cartridgeRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CartridgeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *uc.toResponse(c, location))
	}
	return out, nil
}

// Stats conteos de cartuchos por estado.
func (uc *CartridgeUseCase) Stats() (*dto.CartridgeStatsResponse, error) {
	total, err := uc.cartridgeRepo.Count()
	if err != nil {
		return nil, err
	}
	stats := &dto.CartridgeStatsResponse{Total: total}
	for status, dst := range map[string]*int64{
		entity.StatusInStock:   &stats.InStock,
		entity.StatusInUse:     &stats.InUse,
		entity.StatusRefilling: &stats.Refilling,
		entity.StatusDisposed:  &stats.Disposed,
	} {
		n, err := uc.cartridgeRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		*dst = n
	}
	return stats, nil
}

// CountByLocationAndStatus cuenta cartuchos en una ubicación, opcionalmente
// filtrando por estado (status vacío cuenta todos).
func (uc *CartridgeUseCase) CountByLocationAndStatus(locationID, status string) (int64, error) {
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return 0, err
	}
	if location == nil {
		return 0, domain.ErrLocationNotFound
	}
	if status == "" {
		return uc.cartridgeRepo.CountByLocation(locationID)
	}
	return uc.cartridgeRepo.CountByLocationAndStatus(locationID, status)
}

func (uc *CartridgeUseCase) lookupLocation(id *string) *entity.Location {
	if id == nil {
		return nil
	}
	location, err := uc.locationRepo.GetByID(*id)
	if err != nil {
		return nil
	}
	return location
}

func (uc *CartridgeUseCase) toResponses(list []*entity.Cartridge) []dto.CartridgeResponse {
	// Cache de nombres para no repetir lookups de la misma ubicación.
	names := map[string]*entity.Location{}
	out := make([]dto.CartridgeResponse, 0, len(list))
	for _, c := range list {
		var location *entity.Location
		if c.CurrentLocationID != nil {
			var ok bool
			location, ok = names[*c.CurrentLocationID]
			if !ok {
				location = uc.lookupLocation(c.CurrentLocationID)
				names[*c.CurrentLocationID] = location
			}
		}
		out = append(out, *uc.toResponse(c, location))
	}
	return out
}

func (uc *CartridgeUseCase) toListResponse(list []*entity.Cartridge, page dto.PageRequest) *dto.CartridgeListResponse {
	return &dto.CartridgeListResponse{
		Items: uc.toResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func (uc *CartridgeUseCase) toResponse(c *entity.Cartridge, location *entity.Location) *dto.CartridgeResponse {
	resp := &dto.CartridgeResponse{
		ID:                 c.ID,
		Model:              c.Model,
		SerialNumber:       c.SerialNumber,
		Brand:              c.Brand,
		PartNumber:         c.PartNumber,
		Color:              c.Color,
		CompatiblePrinters: c.CompatiblePrinters,
		ResourcePages:      c.ResourcePages,
		Description:        c.Description,
		Status:             c.Status,
		CurrentLocationID:  c.CurrentLocationID,
		CreatedAt:          c.CreatedAt,
	}
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		resp.UpdatedAt = &t
	}
	if c.CurrentLocationID != nil && location != nil && location.ID == *c.CurrentLocationID {
		resp.CurrentLocationName = location.Name
	}
	return resp
}
