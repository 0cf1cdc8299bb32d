package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, name, address, contact_person, contact_phone, description, active`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación. El nombre es único.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Name, l.Address, l.ContactPerson, l.ContactPhone, l.Description, l.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLocation
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get location")
}

// GetByName obtiene una ubicación por su nombre exacto.
func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get location by name")
}

// Update actualiza una ubicación existente.
func (r *LocationRepo) Update(l *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, address = $3, contact_person = $4,
			contact_phone = $5, description = $6, active = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Name, l.Address, l.ContactPerson, l.ContactPhone, l.Description, l.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLocation
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete elimina una ubicación por ID.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

// List lista ubicaciones ordenadas por nombre, con paginación.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, []any{limit, offset}, "list locations")
}

// ListActive lista las ubicaciones activas ordenadas por nombre.
func (r *LocationRepo) ListActive() ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE active = TRUE ORDER BY name`
	return r.scanMany(query, nil, "list active locations")
}

// SearchByAddress busca ubicaciones por dirección (coincidencia parcial).
func (r *LocationRepo) SearchByAddress(address string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM locations WHERE address ILIKE '%' || $1 || '%' ORDER BY name`
	return r.scanMany(query, []any{address}, "search locations by address")
}

// SearchByContactPerson busca ubicaciones por persona de contacto.
func (r *LocationRepo) SearchByContactPerson(person string) ([]*entity.Location, error) {
	query := `SELECT ` + locationColumns + `
		FROM locations WHERE contact_person ILIKE '%' || $1 || '%' ORDER BY name`
	return r.scanMany(query, []any{person}, "search locations by contact")
}

func (r *LocationRepo) scanOne(row pgx.Row, op string) (*entity.Location, error) {
	l, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

func (r *LocationRepo) scanMany(query string, args []any, op string) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.ContactPerson, &l.ContactPhone, &l.Description, &l.Active)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
