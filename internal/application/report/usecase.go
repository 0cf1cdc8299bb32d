package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// ReportUseCase arma los datos de los reportes y delega la generación
// del PDF al generador inyectado.
type ReportUseCase struct {
	cartridgeRepo repository.CartridgeRepository
	operationRepo repository.OperationRepository
	locationRepo  repository.LocationRepository
	generator     ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	cartridgeRepo repository.CartridgeRepository,
	operationRepo repository.OperationRepository,
	locationRepo repository.LocationRepository,
	generator ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		cartridgeRepo: cartridgeRepo,
		operationRepo: operationRepo,
		locationRepo:  locationRepo,
		generator:     generator,
	}
}

// OperationsPDF genera el reporte de operaciones del rango [from, to].
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidInput     si el rango es inválido (to anterior a from).
func (uc *ReportUseCase) OperationsPDF(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if to.Before(from) {
		return nil, "", fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}

	ops, err := uc.operationRepo.ListByDateRange(from, to, 10000, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar operaciones: %w", err)
	}

	names := map[string]string{}
	enriched := make([]OperationForPDF, 0, len(ops))
	for _, op := range ops {
		enriched = append(enriched, OperationForPDF{
			Operation:    *op,
			LocationName: uc.locationName(op.LocationID, names),
		})
	}

	pdfBytes, err := uc.generator.GenerateOperationsReport(ctx, from, to, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename := fmt.Sprintf("operaciones_%s_%s.pdf", from.Format("20060102"), to.Format("20060102"))
	return pdfBytes, filename, nil
}

// InventoryPDF genera el reporte del inventario completo de cartuchos.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, string, error) {
	cartridges, err := uc.cartridgeRepo.List(10000, 0)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar cartuchos: %w", err)
	}

	names := map[string]string{}
	enriched := make([]CartridgeForPDF, 0, len(cartridges))
	stats := InventoryStats{Total: int64(len(cartridges))}
	for _, c := range cartridges {
		switch c.Status {
		case entity.StatusInStock:
			stats.InStock++
		case entity.StatusInUse:
			stats.InUse++
		case entity.StatusRefilling:
			stats.Refilling++
		case entity.StatusDisposed:
			stats.Disposed++
		}
		enriched = append(enriched, CartridgeForPDF{
			Cartridge:    *c,
			LocationName: uc.locationName(c.CurrentLocationID, names),
		})
	}

	pdfBytes, err := uc.generator.GenerateInventoryReport(ctx, enriched, stats)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}

	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("20060102"))
	return pdfBytes, filename, nil
}

// locationName resuelve el nombre de una ubicación con cache por llamada.
// Ubicaciones borradas o nulas se reportan como "—".
func (uc *ReportUseCase) locationName(id *string, cache map[string]string) string {
	if id == nil {
		return "—"
	}
	if name, ok := cache[*id]; ok {
		return name
	}
	name := "—"
	if loc, err := uc.locationRepo.GetByID(*id); err == nil && loc != nil {
		name = loc.Name
	}
	cache[*id] = name
	return name
}
