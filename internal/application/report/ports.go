package report

import (
	"context"
	"time"

	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

// OperationForPDF operación enriquecida con el nombre de la ubicación.
type OperationForPDF struct {
	entity.Operation
	LocationName string
}

// CartridgeForPDF cartucho enriquecido con el nombre de su ubicación actual.
type CartridgeForPDF struct {
	entity.Cartridge
	LocationName string
}

// InventoryStats totales por estado para el encabezado del reporte de inventario.
type InventoryStats struct {
	Total     int64
	InStock   int64
	InUse     int64
	Refilling int64
	Disposed  int64
}

// ReportPDFGenerator genera los reportes en PDF. Implementado en
// infrastructure/pdf con Maroto v2.
type ReportPDFGenerator interface {
	GenerateOperationsReport(ctx context.Context, from, to time.Time, ops []OperationForPDF) ([]byte, error)
	GenerateInventoryReport(ctx context.Context, cartridges []CartridgeForPDF, stats InventoryStats) ([]byte, error)
}
