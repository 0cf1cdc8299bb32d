package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/application/usecase"
)

// CartridgeHandler maneja las peticiones HTTP para cartuchos (protegido).
type CartridgeHandler struct {
	uc *usecase.CartridgeUseCase
}

// NewCartridgeHandler construye el handler.
func NewCartridgeHandler(uc *usecase.CartridgeUseCase) *CartridgeHandler {
	return &CartridgeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cartucho
// @Tags         cartridges
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCartridgeRequest  true  "Datos del cartucho"
// @Success      201   {object}  dto.CartridgeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cartridges [post]
func (h *CartridgeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCartridgeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "model es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cartucho por ID
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cartucho"
// @Success      200  {object}  dto.CartridgeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cartridges/{id} [get]
func (h *CartridgeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySerial godoc
// @Summary      Obtener cartucho por número de serie
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        serial  path  string  true  "Número de serie"
// @Success      200     {object}  dto.CartridgeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/cartridges/serial/{serial} [get]
func (h *CartridgeHandler) GetBySerial(c *fiber.Ctx) error {
	serial := c.Params("serial")
	if serial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "serial es requerido"})
	}
	out, err := h.uc.GetBySerialNumber(serial)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cartuchos
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        q       query  string  false  "Búsqueda por modelo o serial"
// @Success      200     {object}  dto.CartridgeListResponse
// @Router       /api/cartridges [get]
func (h *CartridgeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	if q := c.Query("q"); q != "" {
		out, err := h.uc.Search(q, page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByStatus godoc
// @Summary      Listar cartuchos por estado
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        status  path  string  true  "IN_STOCK | IN_USE | REFILLING | DISPOSED"
// @Success      200     {array}   dto.CartridgeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/cartridges/status/{status} [get]
func (h *CartridgeHandler) ListByStatus(c *fiber.Ctx) error {
	out, err := h.uc.ListByStatus(c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Listar cartuchos en una ubicación
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.CartridgeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/cartridges [get]
func (h *CartridgeHandler) ListByLocation(c *fiber.Ctx) error {
	out, err := h.uc.ListByLocation(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CountByLocation godoc
// @Summary      Contar cartuchos en una ubicación
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        status  query  string  false  "Filtro por estado"
// @Success      200     {object}  map[string]int64
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/cartridges/count [get]
func (h *CartridgeHandler) CountByLocation(c *fiber.Ctx) error {
	count, err := h.uc.CountByLocationAndStatus(c.Params("id"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// Stats godoc
// @Summary      Conteos de cartuchos por estado
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartridgeStatsResponse
// @Router       /api/cartridges/stats [get]
func (h *CartridgeHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar cartucho (edición directa)
// @Description  Aplica la edición y deriva la operación de auditoría
// @Description  implicada. El campo audit_status de la respuesta indica el
// @Description  desenlace: NONE, LOGGED o FAILED. La edición queda aplicada
// @Description  aunque la auditoría falle.
// @Tags         cartridges
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cartucho"
// @Param        body  body  dto.UpdateCartridgeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EditCartridgeResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cartridges/{id} [put]
func (h *CartridgeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateCartridgeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Model == "" || in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "model y status son requeridos"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja y eliminar cartucho
// @Description  Registra la operación de baja y elimina el cartucho. Su
// @Description  historial de operaciones sigue siendo consultable.
// @Tags         cartridges
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cartucho"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cartridges/{id} [delete]
func (h *CartridgeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUsername(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
