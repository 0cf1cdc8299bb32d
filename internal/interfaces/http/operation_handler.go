package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	applifecycle "github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/application/usecase"
)

// OperationHandler maneja las peticiones HTTP del registro de operaciones.
// El POST ejecuta una transición explícita vía el motor de ciclo de vida;
// el resto son consultas.
type OperationHandler struct {
	lifecycleUC *applifecycle.UseCase
	queryUC     *usecase.OperationUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(lifecycleUC *applifecycle.UseCase, queryUC *usecase.OperationUseCase) *OperationHandler {
	return &OperationHandler{lifecycleUC: lifecycleUC, queryUC: queryUC}
}

// Perform godoc
// @Summary      Ejecutar operación sobre un cartucho
// @Description  Valida la transición contra el estado actual del cartucho,
// @Description  lo muta y registra la operación, todo en una transacción.
// @Description  Una transición ilegal responde 422 sin tocar estado alguno.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "Operación a ejecutar"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Perform(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Type == "" || in.CartridgeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type y cartridge_id son requeridos"})
	}
	if in.Count <= 0 {
		in.Count = 1
	}
	out, err := h.lifecycleUC.Perform(c.UserContext(), applifecycle.PerformInput{
		Type:        in.Type,
		Count:       in.Count,
		CartridgeID: in.CartridgeID,
		LocationID:  in.LocationID,
		Notes:       in.Notes,
	}, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener operación por ID
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.queryUC.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar operaciones
// @Description  Listado general, filtrable por tipo o por rango de fechas
// @Description  (from/to en formato RFC 3339 o fecha simple 2006-01-02).
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        type    query  string  false  "RECEIPT | ISSUE | RETURN | REFILL | DISPOSAL"
// @Param        from    query  string  false  "Fecha inicial"
// @Param        to      query  string  false  "Fecha final"
// @Success      200     {object}  dto.OperationListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}

	if c.Query("from") != "" || c.Query("to") != "" {
		from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		out, err := h.queryUC.ListByDateRange(from, to, page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}

	if opType := c.Query("type"); opType != "" {
		out, err := h.queryUC.ListByType(opType, page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}

	out, err := h.queryUC.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCartridge godoc
// @Summary      Historial de operaciones de un cartucho
// @Description  Consultable también para cartuchos ya eliminados: el
// @Description  historial conserva modelo y serial desnormalizados.
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cartucho"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OperationListResponse
// @Router       /api/cartridges/{id}/operations [get]
func (h *OperationHandler) ListByCartridge(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.queryUC.ListByCartridge(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Operaciones registradas sobre una ubicación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OperationListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/operations [get]
func (h *OperationHandler) ListByLocation(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.queryUC.ListByLocation(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Contar operaciones por tipo y rango de fechas
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  true   "RECEIPT | ISSUE | RETURN | REFILL | DISPOSAL"
// @Param        from  query  string  false  "Fecha inicial"
// @Param        to    query  string  false  "Fecha final"
// @Success      200   {object}  map[string]int64
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/operations/count [get]
func (h *OperationHandler) Count(c *fiber.Ctx) error {
	opType := c.Query("type")
	if opType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type es requerido"})
	}
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
	}
	count, err := h.queryUC.CountByTypeAndDateRange(opType, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// parseDateRange acepta RFC 3339 o fecha simple. Valores vacíos caen a un
// rango abierto razonable; "to" en fecha simple abarca el día completo.
func parseDateRange(fromStr, toStr string) (from, to time.Time, err error) {
	from = time.Time{}
	to = time.Now()
	if fromStr != "" {
		from, err = parseDate(fromStr)
		if err != nil {
			return
		}
	}
	if toStr != "" {
		to, err = parseDate(toStr)
		if err != nil {
			return
		}
		if len(toStr) == len("2006-01-02") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
