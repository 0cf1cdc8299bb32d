package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/application/report"
)

// ReportHandler descarga de reportes en PDF (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Operations godoc
// @Summary      Descargar reporte de operaciones en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Fecha inicial (RFC 3339 o 2006-01-02)"
// @Param        to    query  string  false  "Fecha final"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/operations [get]
func (h *ReportHandler) Operations(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	pdfBytes, filename, err := h.uc.OperationsPDF(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Inventory godoc
// @Summary      Descargar inventario de cartuchos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.InventoryPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
