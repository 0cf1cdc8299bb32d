package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. La eliminación está
// vetada mientras algún cartucho siga referenciando la ubicación.
type LocationUseCase struct {
	locationRepo  repository.LocationRepository
	cartridgeRepo repository.CartridgeRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository, cartridgeRepo repository.CartridgeRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, cartridgeRepo: cartridgeRepo}
}

// Create da de alta una ubicación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.Address == "" {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	location := &entity.Location{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		ContactPhone:  in.ContactPhone,
		Description:   in.Description,
		Active:        active,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return uc.toResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return uc.toResponse(location), nil
}

// GetByName obtiene una ubicación por nombre (único).
func (uc *LocationUseCase) GetByName(name string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	return uc.toResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.DefaultPage()
	list, err := uc.locationRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *uc.toResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListActive lista las ubicaciones activas.
func (uc *LocationUseCase) ListActive() ([]dto.LocationResponse, error) {
	list, err := uc.locationRepo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *uc.toResponse(l))
	}
	return items, nil
}

// SearchByAddress busca ubicaciones por coincidencia de dirección.
func (uc *LocationUseCase) SearchByAddress(address string) ([]dto.LocationResponse, error) {
	list, err := uc.locationRepo.SearchByAddress(address)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *uc.toResponse(l))
	}
	return items, nil
}

// SearchByContactPerson busca ubicaciones por persona de contacto.
func (uc *LocationUseCase) SearchByContactPerson(contact string) ([]dto.LocationResponse, error) {
	list, err := uc.locationRepo.SearchByContactPerson(contact)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *uc.toResponse(l))
	}
	return items, nil
}

// Update actualiza los datos de una ubicación.
func (uc *LocationUseCase) Update(id string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}
	location.Name = in.Name
	location.Address = in.Address
	location.ContactPerson = in.ContactPerson
	location.ContactPhone = in.ContactPhone
	location.Description = in.Description
	if in.Active != nil {
		location.Active = *in.Active
	}
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return uc.toResponse(location), nil
}

// SetActive cambia el flag de actividad de la ubicación.
func (uc *LocationUseCase) SetActive(id string, active bool) error {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrLocationNotFound
	}
	location.Active = active
	return uc.locationRepo.Update(location)
}

// Delete elimina una ubicación. Rechaza con conflicto si algún cartucho
// todavía la referencia: la integridad se garantiza en esta capa, no solo
// en la base de datos.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrLocationNotFound
	}
	count, err := uc.cartridgeRepo.CountByLocation(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrLocationHasCartridges
	}
	return uc.locationRepo.Delete(id)
}

func (uc *LocationUseCase) toResponse(l *entity.Location) *dto.LocationResponse {
	count, err := uc.cartridgeRepo.CountByLocation(l.ID)
	if err != nil {
		count = 0
	}
	return &dto.LocationResponse{
		ID:             l.ID,
		Name:           l.Name,
		Address:        l.Address,
		ContactPerson:  l.ContactPerson,
		ContactPhone:   l.ContactPhone,
		Description:    l.Description,
		Active:         l.Active,
		CartridgeCount: count,
	}
}
