package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/application/usecase"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

func newTestLocationUC(t *testing.T) (*usecase.LocationUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	return usecase.NewLocationUseCase(&memLocationRepo{s}, &memCartridgeRepo{s}), s
}

func TestLocationCreate_YConteoDeCartuchos(t *testing.T) {
	uc, s := newTestLocationUC(t)

	out, err := uc.Create(dto.CreateLocationRequest{Name: "Almacén Central", Address: "Calle 1 #2-3"})
	require.NoError(t, err)
	assert.True(t, out.Active, "una ubicación nueva queda activa por defecto")
	assert.Equal(t, int64(0), out.CartridgeCount)

	s.addCartridge(entity.Cartridge{ID: "c1", Model: "A", Status: entity.StatusInStock, CurrentLocationID: strPtr(out.ID)})

	got, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CartridgeCount)
}

func TestLocationCreate_SinNombre(t *testing.T) {
	uc, _ := newTestLocationUC(t)
	_, err := uc.Create(dto.CreateLocationRequest{Address: "Calle 1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocationDelete_ConCartuchosAsociados(t *testing.T) {
	uc, s := newTestLocationUC(t)
	s.addLocation(entity.Location{ID: testLocationID, Name: "Almacén Central", Active: true})
	s.addCartridge(entity.Cartridge{
		ID: "c1", Model: "A", Status: entity.StatusInStock, CurrentLocationID: strPtr(testLocationID),
	})

	err := uc.Delete(testLocationID)
	assert.ErrorIs(t, err, domain.ErrLocationHasCartridges)

	_, ok := s.locations[testLocationID]
	assert.True(t, ok, "la ubicación referenciada no debe borrarse")
}

func TestLocationDelete_Vacia(t *testing.T) {
	uc, s := newTestLocationUC(t)
	s.addLocation(entity.Location{ID: testLocationID, Name: "Almacén Central", Active: true})

	require.NoError(t, uc.Delete(testLocationID))
	_, ok := s.locations[testLocationID]
	assert.False(t, ok)
}

func TestLocationDelete_NoEncontrada(t *testing.T) {
	uc, _ := newTestLocationUC(t)
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrLocationNotFound)
}

func TestLocationSetActive(t *testing.T) {
	uc, s := newTestLocationUC(t)
	s.addLocation(entity.Location{ID: testLocationID, Name: "Almacén Central", Active: true})

	require.NoError(t, uc.SetActive(testLocationID, false))
	assert.False(t, s.locations[testLocationID].Active)

	active, err := uc.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}
