package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
)

// AttributeHandler maneja el catálogo de atributos globales y custom (protegido).
type AttributeHandler struct {
	uc *usecase.AttributeUseCase
}

// NewAttributeHandler construye el handler.
func NewAttributeHandler(uc *usecase.AttributeUseCase) *AttributeHandler {
	return &AttributeHandler{uc: uc}
}

// CreateGlobal godoc
// @Summary      Crear atributo global
// @Description  El slug se deriva del nombre y es único en todo el catálogo global.
// @Tags         attributes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAttributeRequest  true  "Definición del atributo"
// @Success      201   {object}  dto.AttributeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attributes/global [post]
func (h *AttributeHandler) CreateGlobal(c *fiber.Ctx) error {
	var in dto.CreateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateGlobal(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGlobal godoc
// @Summary      Listar atributos globales
// @Tags         attributes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AttributeListResponse
// @Router       /api/attributes/global [get]
func (h *AttributeHandler) ListGlobal(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListGlobal(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCustom godoc
// @Summary      Crear atributo custom de la empresa
// @Description  El slug se deriva del nombre y es único dentro de la empresa.
// @Tags         attributes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAttributeRequest  true  "Definición del atributo"
// @Success      201   {object}  dto.AttributeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attributes/custom [post]
func (h *AttributeHandler) CreateCustom(c *fiber.Ctx) error {
	var in dto.CreateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateCustom(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCustom godoc
// @Summary      Listar atributos custom de la empresa
// @Tags         attributes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AttributeListResponse
// @Router       /api/attributes/custom [get]
func (h *AttributeHandler) ListCustom(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListCustom(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCustom godoc
// @Summary      Eliminar atributo custom
// @Description  Rechaza con 409 si algún template lo referencia.
// @Tags         attributes
// @Security     Bearer
// @Param        id  path  string  true  "ID del atributo custom"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/attributes/custom/{id} [delete]
func (h *AttributeHandler) DeleteCustom(c *fiber.Ctx) error {
	if err := h.uc.DeleteCustom(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
