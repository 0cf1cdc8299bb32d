package usecase_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para tests de los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	cartridges map[string]*entity.Cartridge
	operations []*entity.Operation
	locations  map[string]*entity.Location
	users      map[string]*entity.User

	// failOperationCreate simula un fallo de escritura del registro de
	// operaciones (para probar la auditoría best-effort).
	failOperationCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		cartridges: map[string]*entity.Cartridge{},
		locations:  map[string]*entity.Location{},
		users:      map[string]*entity.User{},
	}
}

func (s *memStore) addCartridge(c entity.Cartridge) { s.cartridges[c.ID] = &c }
func (s *memStore) addLocation(l entity.Location)   { s.locations[l.ID] = &l }
func (s *memStore) addUser(u entity.User)           { s.users[u.ID] = &u }

func cloneCartridge(c *entity.Cartridge) *entity.Cartridge {
	if c == nil {
		return nil
	}
	out := *c
	if c.CurrentLocationID != nil {
		id := *c.CurrentLocationID
		out.CurrentLocationID = &id
	}
	return &out
}

// ── CartridgeRepository ───────────────────────────────────────────────────────

type memCartridgeRepo struct{ s *memStore }

var _ repository.CartridgeRepository = (*memCartridgeRepo)(nil)

func (r *memCartridgeRepo) Create(c *entity.Cartridge) error {
	r.s.cartridges[c.ID] = cloneCartridge(c)
	return nil
}

func (r *memCartridgeRepo) GetByID(id string) (*entity.Cartridge, error) {
	return cloneCartridge(r.s.cartridges[id]), nil
}

func (r *memCartridgeRepo) GetForUpdate(id string) (*entity.Cartridge, error) {
	return cloneCartridge(r.s.cartridges[id]), nil
}

func (r *memCartridgeRepo) GetBySerialNumber(serial string) (*entity.Cartridge, error) {
	for _, c := range r.s.cartridges {
		if c.SerialNumber == serial {
			return cloneCartridge(c), nil
		}
	}
	return nil, nil
}

func (r *memCartridgeRepo) ExistsBySerialNumber(serial string) (bool, error) {
	c, _ := r.GetBySerialNumber(serial)
	return c != nil, nil
}

func (r *memCartridgeRepo) Update(c *entity.Cartridge) error {
	r.s.cartridges[c.ID] = cloneCartridge(c)
	return nil
}

func (r *memCartridgeRepo) Delete(id string) error {
	delete(r.s.cartridges, id)
	return nil
}

func (r *memCartridgeRepo) List(limit, offset int) ([]*entity.Cartridge, error) {
	var out []*entity.Cartridge
	for _, c := range r.s.cartridges {
		out = append(out, cloneCartridge(c))
	}
	return out, nil
}

func (r *memCartridgeRepo) Search(query string, limit, offset int) ([]*entity.Cartridge, error) {
	var out []*entity.Cartridge
	for _, c := range r.s.cartridges {
		if strings.Contains(c.Model, query) || strings.Contains(c.SerialNumber, query) {
			out = append(out, cloneCartridge(c))
		}
	}
	return out, nil
}

func (r *memCartridgeRepo) ListByStatus(status string) ([]*entity.Cartridge, error) {
	var out []*entity.Cartridge
	for _, c := range r.s.cartridges {
		if c.Status == status {
			out = append(out, cloneCartridge(c))
		}
	}
	return out, nil
}

func (r *memCartridgeRepo) ListByLocation(locationID string) ([]*entity.Cartridge, error) {
	var out []*entity.Cartridge
	for _, c := range r.s.cartridges {
		if c.CurrentLocationID != nil && *c.CurrentLocationID == locationID {
			out = append(out, cloneCartridge(c))
		}
	}
	return out, nil
}

func (r *memCartridgeRepo) Count() (int64, error) {
	return int64(len(r.s.cartridges)), nil
}

func (r *memCartridgeRepo) CountByStatus(status string) (int64, error) {
	list, _ := r.ListByStatus(status)
	return int64(len(list)), nil
}

func (r *memCartridgeRepo) CountByLocation(locationID string) (int64, error) {
	list, _ := r.ListByLocation(locationID)
	return int64(len(list)), nil
}

func (r *memCartridgeRepo) CountByLocationAndStatus(locationID, status string) (int64, error) {
	var n int64
	for _, c := range r.s.cartridges {
		if c.CurrentLocationID != nil && *c.CurrentLocationID == locationID && c.Status == status {
			n++
		}
	}
	return n, nil
}

// ── OperationRepository ───────────────────────────────────────────────────────

type memOperationRepo struct{ s *memStore }

var _ repository.OperationRepository = (*memOperationRepo)(nil)

func (r *memOperationRepo) Create(op *entity.Operation) error {
	if r.s.failOperationCreate {
		return errors.New("fallo simulado de escritura")
	}
	cp := *op
	r.s.operations = append(r.s.operations, &cp)
	return nil
}

func (r *memOperationRepo) GetByID(id string) (*entity.Operation, error) {
	for _, op := range r.s.operations {
		if op.ID == id {
			cp := *op
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOperationRepo) List(limit, offset int) ([]*entity.Operation, error) {
	return append([]*entity.Operation(nil), r.s.operations...), nil
}

func (r *memOperationRepo) ListByCartridge(cartridgeID string, limit, offset int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.s.operations {
		if op.CartridgeID == cartridgeID {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *memOperationRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.s.operations {
		if op.LocationID != nil && *op.LocationID == locationID {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *memOperationRepo) ListByType(opType string, limit, offset int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.s.operations {
		if op.Type == opType {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *memOperationRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.s.operations {
		if !op.OperationDate.Before(from) && !op.OperationDate.After(to) {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *memOperationRepo) CountByTypeAndDateRange(opType string, from, to time.Time) (int64, error) {
	var n int64
	for _, op := range r.s.operations {
		if op.Type == opType && !op.OperationDate.Before(from) && !op.OperationDate.After(to) {
			n++
		}
	}
	return n, nil
}

// ── LocationRepository ────────────────────────────────────────────────────────

type memLocationRepo struct{ s *memStore }

var _ repository.LocationRepository = (*memLocationRepo)(nil)

func (r *memLocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLocationRepo) GetByName(name string) (*entity.Location, error) {
	for _, l := range r.s.locations {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) Update(l *entity.Location) error {
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) Delete(id string) error {
	delete(r.s.locations, id)
	return nil
}

func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memLocationRepo) ListActive() ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if l.Active {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLocationRepo) SearchByAddress(address string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if strings.Contains(l.Address, address) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLocationRepo) SearchByContactPerson(contact string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.s.locations {
		if strings.Contains(l.ContactPerson, contact) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── UserRepository ────────────────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.s.users, id)
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner emula transaccionalidad con snapshot: si fn devuelve error, el
// estado vuelve al del inicio de la "transacción".
type memTxRunner struct{ s *memStore }

var _ lifecycle.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	cartridgeRepo repository.CartridgeRepository,
	operationRepo repository.OperationRepository,
	locationRepo repository.LocationRepository,
) error) error {
	snapCartridges := map[string]*entity.Cartridge{}
	for id, c := range r.s.cartridges {
		snapCartridges[id] = cloneCartridge(c)
	}
	snapOperations := append([]*entity.Operation(nil), r.s.operations...)

	err := fn(&memCartridgeRepo{r.s}, &memOperationRepo{r.s}, &memLocationRepo{r.s})
	if err != nil {
		r.s.cartridges = snapCartridges
		r.s.operations = snapOperations
	}
	return err
}
