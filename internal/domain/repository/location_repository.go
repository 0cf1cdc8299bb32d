package repository

import "github.com/jhoicas/Cartuchos-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByName(name string) (*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Location, error)
	ListActive() ([]*entity.Location, error)
	SearchByAddress(address string) ([]*entity.Location, error)
	SearchByContactPerson(contact string) ([]*entity.Location, error)
}
