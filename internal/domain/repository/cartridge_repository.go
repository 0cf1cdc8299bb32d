package repository

import "github.com/jhoicas/Cartuchos-api/internal/domain/entity"

// CartridgeRepository define el puerto de persistencia para Cartridge (DIP).
type CartridgeRepository interface {
	Create(cartridge *entity.Cartridge) error
	GetByID(id string) (*entity.Cartridge, error)
	// GetForUpdate obtiene el cartucho bloqueando su fila (SELECT FOR UPDATE).
	// La fila del cartucho es el punto de serialización de las escrituras
	// concurrentes; solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Cartridge, error)
	GetBySerialNumber(serial string) (*entity.Cartridge, error)
	ExistsBySerialNumber(serial string) (bool, error)
	Update(cartridge *entity.Cartridge) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Cartridge, error)
	Search(query string, limit, offset int) ([]*entity.Cartridge, error)
	ListByStatus(status string) ([]*entity.Cartridge, error)
	ListByLocation(locationID string) ([]*entity.Cartridge, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountByLocation(locationID string) (int64, error)
	CountByLocationAndStatus(locationID, status string) (int64, error)
}
