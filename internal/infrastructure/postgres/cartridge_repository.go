package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

var _ repository.CartridgeRepository = (*CartridgeRepo)(nil)

const cartridgeColumns = `id, model, serial_number, brand, part_number, color, compatible_printers,
		resource_pages, description, status, current_location_id, created_at, updated_at`

// CartridgeRepo implementación del puerto CartridgeRepository sobre
// PostgreSQL (usable con pool o tx).
type CartridgeRepo struct {
	q Querier
}

// NewCartridgeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartridgeRepository(q Querier) *CartridgeRepo {
	return &CartridgeRepo{q: q}
}

// Create persiste un nuevo cartucho. Serial duplicado devuelve conflicto.
func (r *CartridgeRepo) Create(c *entity.Cartridge) error {
	query := `
		INSERT INTO cartridges (` + cartridgeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Model, nullable(c.SerialNumber), c.Brand, c.PartNumber, c.Color, c.CompatiblePrinters,
		c.ResourcePages, c.Description, c.Status, c.CurrentLocationID, c.CreatedAt, nullableTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("insert cartridge: %w", err)
	}
	return nil
}

// GetByID obtiene un cartucho por ID.
func (r *CartridgeRepo) GetByID(id string) (*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + ` FROM cartridges WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get cartridge")
}

// GetForUpdate obtiene el cartucho bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido sobre un Querier atado a una transacción.
func (r *CartridgeRepo) GetForUpdate(id string) (*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + ` FROM cartridges WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get cartridge for update")
}

// GetBySerialNumber obtiene un cartucho por su número de serie.
func (r *CartridgeRepo) GetBySerialNumber(serial string) (*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + ` FROM cartridges WHERE serial_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, serial), "get cartridge by serial")
}

// ExistsBySerialNumber reporta si algún cartucho usa ese número de serie.
func (r *CartridgeRepo) ExistsBySerialNumber(serial string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM cartridges WHERE serial_number = $1)`, serial).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by serial: %w", err)
	}
	return exists, nil
}

// Update actualiza un cartucho existente.
func (r *CartridgeRepo) Update(c *entity.Cartridge) error {
	query := `
		UPDATE cartridges SET model = $2, serial_number = $3, brand = $4, part_number = $5,
			color = $6, compatible_printers = $7, resource_pages = $8, description = $9,
			status = $10, current_location_id = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Model, nullable(c.SerialNumber), c.Brand, c.PartNumber,
		c.Color, c.CompatiblePrinters, c.ResourcePages, c.Description,
		c.Status, c.CurrentLocationID, nullableTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSerial
		}
		return fmt.Errorf("update cartridge: %w", err)
	}
	return nil
}

// Delete elimina un cartucho por ID. Las operaciones que lo referencian
// sobreviven: no hay FK en cascada sobre operations.cartridge_id.
func (r *CartridgeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cartridges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cartridge: %w", err)
	}
	return nil
}

// List lista cartuchos con paginación.
func (r *CartridgeRepo) List(limit, offset int) ([]*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + `
		FROM cartridges ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, []any{limit, offset}, "list cartridges")
}

// Search busca por modelo o serial (coincidencia parcial, sin distinguir mayúsculas).
func (r *CartridgeRepo) Search(q string, limit, offset int) ([]*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + `
		FROM cartridges
		WHERE model ILIKE '%' || $1 || '%' OR serial_number ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, []any{q, limit, offset}, "search cartridges")
}

// ListByStatus lista cartuchos por estado.
func (r *CartridgeRepo) ListByStatus(status string) ([]*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + ` FROM cartridges WHERE status = $1 ORDER BY created_at DESC`
	return r.scanMany(query, []any{status}, "list by status")
}

// ListByLocation lista cartuchos actualmente en una ubicación.
func (r *CartridgeRepo) ListByLocation(locationID string) ([]*entity.Cartridge, error) {
	query := `SELECT ` + cartridgeColumns + ` FROM cartridges WHERE current_location_id = $1 ORDER BY created_at DESC`
	return r.scanMany(query, []any{locationID}, "list by location")
}

// Count cuenta todos los cartuchos.
func (r *CartridgeRepo) Count() (int64, error) {
	return r.count(`SELECT COUNT(*) FROM cartridges`)
}

// CountByStatus cuenta cartuchos por estado.
func (r *CartridgeRepo) CountByStatus(status string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM cartridges WHERE status = $1`, status)
}

// CountByLocation cuenta cartuchos que referencian una ubicación.
func (r *CartridgeRepo) CountByLocation(locationID string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM cartridges WHERE current_location_id = $1`, locationID)
}

// CountByLocationAndStatus cuenta cartuchos por ubicación y estado.
func (r *CartridgeRepo) CountByLocationAndStatus(locationID, status string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM cartridges WHERE current_location_id = $1 AND status = $2`, locationID, status)
}

func (r *CartridgeRepo) count(query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cartridges: %w", err)
	}
	return n, nil
}

func (r *CartridgeRepo) scanOne(row pgx.Row, op string) (*entity.Cartridge, error) {
	c, err := scanCartridge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r *CartridgeRepo) scanMany(query string, args []any, op string) ([]*entity.Cartridge, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Cartridge
	for rows.Next() {
		c, err := scanCartridge(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCartridge(row pgx.Row) (*entity.Cartridge, error) {
	var (
		c         entity.Cartridge
		serial    *string
		updatedAt *time.Time
	)
	err := row.Scan(
		&c.ID, &c.Model, &serial, &c.Brand, &c.PartNumber, &c.Color, &c.CompatiblePrinters,
		&c.ResourcePages, &c.Description, &c.Status, &c.CurrentLocationID, &c.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if serial != nil {
		c.SerialNumber = *serial
	}
	if updatedAt != nil {
		c.UpdatedAt = *updatedAt
	}
	return &c, nil
}

// nullable convierte "" en NULL (serial_number tiene constraint UNIQUE y
// varios cartuchos pueden no tener serial).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
