package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartuchos-api/internal/application/report"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// Stubs mínimos: embeben la interfaz y sobreescriben solo lo que el
// caso de uso de reportes consulta.

type stubCartridgeRepo struct {
	repository.CartridgeRepository
	list []*entity.Cartridge
}

func (r *stubCartridgeRepo) List(limit, offset int) ([]*entity.Cartridge, error) {
	return r.list, nil
}

type stubOperationRepo struct {
	repository.OperationRepository
	ops []*entity.Operation
}

func (r *stubOperationRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Operation, error) {
	return r.ops, nil
}

type stubLocationRepo struct {
	repository.LocationRepository
	locations map[string]*entity.Location
	lookups   int
}

func (r *stubLocationRepo) GetByID(id string) (*entity.Location, error) {
	r.lookups++
	return r.locations[id], nil
}

// capturingGenerator guarda lo que recibe y devuelve un PDF de mentira.
type capturingGenerator struct {
	ops        []report.OperationForPDF
	cartridges []report.CartridgeForPDF
	stats      report.InventoryStats
}

func (g *capturingGenerator) GenerateOperationsReport(_ context.Context, _, _ time.Time, ops []report.OperationForPDF) ([]byte, error) {
	g.ops = ops
	return []byte("%PDF-ops"), nil
}

func (g *capturingGenerator) GenerateInventoryReport(_ context.Context, cartridges []report.CartridgeForPDF, stats report.InventoryStats) ([]byte, error) {
	g.cartridges = cartridges
	g.stats = stats
	return []byte("%PDF-inv"), nil
}

func strPtr(s string) *string { return &s }

func TestOperationsPDF_RangoInvertido(t *testing.T) {
	uc := report.NewReportUseCase(&stubCartridgeRepo{}, &stubOperationRepo{}, &stubLocationRepo{}, &capturingGenerator{})

	from := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := uc.OperationsPDF(context.Background(), from, to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperationsPDF_ResuelveNombresDeUbicacion(t *testing.T) {
	locRepo := &stubLocationRepo{locations: map[string]*entity.Location{
		"loc-1": {ID: "loc-1", Name: "Almacén Central"},
	}}
	opRepo := &stubOperationRepo{ops: []*entity.Operation{
		{ID: "op-1", Type: entity.OpIssue, CartridgeModel: "HP 85A", LocationID: strPtr("loc-1")},
		{ID: "op-2", Type: entity.OpRefill, CartridgeModel: "HP 85A", LocationID: nil},
		{ID: "op-3", Type: entity.OpReceipt, CartridgeModel: "HP 85A", LocationID: strPtr("loc-borrada")},
		{ID: "op-4", Type: entity.OpReturn, CartridgeModel: "HP 85A", LocationID: strPtr("loc-1")},
	}}
	gen := &capturingGenerator{}
	uc := report.NewReportUseCase(&stubCartridgeRepo{}, opRepo, locRepo, gen)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	pdf, filename, err := uc.OperationsPDF(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-ops"), pdf)
	assert.Equal(t, "operaciones_20250601_20250630.pdf", filename)

	require.Len(t, gen.ops, 4)
	assert.Equal(t, "Almacén Central", gen.ops[0].LocationName)
	assert.Equal(t, "—", gen.ops[1].LocationName, "operación sin ubicación se reporta con guion")
	assert.Equal(t, "—", gen.ops[2].LocationName, "ubicación borrada se reporta con guion")
	assert.Equal(t, "Almacén Central", gen.ops[3].LocationName)
	assert.Equal(t, 2, locRepo.lookups, "las ubicaciones repetidas se resuelven una sola vez")
}

func TestInventoryPDF_CalculaEstadisticas(t *testing.T) {
	cartRepo := &stubCartridgeRepo{list: []*entity.Cartridge{
		{ID: "c1", Model: "HP 85A", Status: entity.StatusInStock, CurrentLocationID: strPtr("loc-1")},
		{ID: "c2", Model: "HP 85A", Status: entity.StatusInStock, CurrentLocationID: strPtr("loc-1")},
		{ID: "c3", Model: "Canon 737", Status: entity.StatusInUse, CurrentLocationID: strPtr("loc-2")},
		{ID: "c4", Model: "Canon 737", Status: entity.StatusRefilling},
	}}
	locRepo := &stubLocationRepo{locations: map[string]*entity.Location{
		"loc-1": {ID: "loc-1", Name: "Almacén Central"},
		"loc-2": {ID: "loc-2", Name: "Oficina 2"},
	}}
	gen := &capturingGenerator{}
	uc := report.NewReportUseCase(cartRepo, &stubOperationRepo{}, locRepo, gen)

	pdf, filename, err := uc.InventoryPDF(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-inv"), pdf)
	assert.Contains(t, filename, "inventario_")

	assert.Equal(t, int64(4), gen.stats.Total)
	assert.Equal(t, int64(2), gen.stats.InStock)
	assert.Equal(t, int64(1), gen.stats.InUse)
	assert.Equal(t, int64(1), gen.stats.Refilling)
	assert.Equal(t, int64(0), gen.stats.Disposed)

	require.Len(t, gen.cartridges, 4)
	assert.Equal(t, "Oficina 2", gen.cartridges[2].LocationName)
	assert.Equal(t, "—", gen.cartridges[3].LocationName, "cartucho en recarga no tiene ubicación")
}
