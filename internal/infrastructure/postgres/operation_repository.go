package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationColumns = `id, type, count, cartridge_id, cartridge_model, cartridge_serial,
		location_id, performed_by_id, performed_by, operation_date, notes`

// OperationRepo implementación del puerto OperationRepository sobre
// PostgreSQL. Las operaciones son inmutables: solo inserción y lectura.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador.
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

// Create registra una nueva operación en la bitácora.
func (r *OperationRepo) Create(o *entity.Operation) error {
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Type, o.Count, o.CartridgeID, o.CartridgeModel, o.CartridgeSerial,
		o.LocationID, o.PerformedByID, o.PerformedBy, o.OperationDate, o.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID obtiene una operación por ID.
func (r *OperationRepo) GetByID(id string) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	o, err := scanOperation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return o, nil
}

// List lista operaciones con paginación, las más recientes primero.
func (r *OperationRepo) List(limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations ORDER BY operation_date DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, []any{limit, offset}, "list operations")
}

// ListByCartridge lista la bitácora de un cartucho. La bitácora sobrevive
// a la eliminación del cartucho.
func (r *OperationRepo) ListByCartridge(cartridgeID string, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations WHERE cartridge_id = $1
		ORDER BY operation_date DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, []any{cartridgeID, limit, offset}, "list operations by cartridge")
}

// ListByLocation lista operaciones registradas sobre una ubicación.
func (r *OperationRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations WHERE location_id = $1
		ORDER BY operation_date DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, []any{locationID, limit, offset}, "list operations by location")
}

// ListByType lista operaciones de un tipo dado.
func (r *OperationRepo) ListByType(opType string, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations WHERE type = $1
		ORDER BY operation_date DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, []any{opType, limit, offset}, "list operations by type")
}

// ListByDateRange lista operaciones en el rango [from, to].
func (r *OperationRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations WHERE operation_date >= $1 AND operation_date <= $2
		ORDER BY operation_date DESC LIMIT $3 OFFSET $4`
	return r.scanMany(query, []any{from, to, limit, offset}, "list operations by date range")
}

// CountByTypeAndDateRange cuenta operaciones de un tipo en el rango [from, to].
func (r *OperationRepo) CountByTypeAndDateRange(opType string, from, to time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM operations WHERE type = $1 AND operation_date >= $2 AND operation_date <= $3`,
		opType, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}

func (r *OperationRepo) scanMany(query string, args []any, op string) ([]*entity.Operation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		o, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var o entity.Operation
	err := row.Scan(
		&o.ID, &o.Type, &o.Count, &o.CartridgeID, &o.CartridgeModel, &o.CartridgeSerial,
		&o.LocationID, &o.PerformedByID, &o.PerformedBy, &o.OperationDate, &o.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
