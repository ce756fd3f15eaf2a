package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
)

// TemplateHandler maneja templates de producto y sus atributos (protegido).
type TemplateHandler struct {
	uc *usecase.TemplateUseCase
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear template de producto
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTemplateRequest  true  "Nombre del template"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/templates [post]
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return badRequest(c, "VALIDATION", "name es requerido")
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener template con sus atributos
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del template"
// @Success      200  {object}  dto.TemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar templates
// @Tags         templates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TemplateListResponse
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar template
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del template"
// @Param        body  body  dto.UpdateTemplateRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TemplateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar template
// @Description  Rechaza con 409 si hay productos creados con el template.
// @Tags         templates
// @Security     Bearer
// @Param        id  path  string  true  "ID del template"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddAttribute godoc
// @Summary      Asignar atributo al template
// @Description  attribute_kind indica si attribute_id apunta al catálogo global o al de la empresa.
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del template"
// @Param        body  body  dto.AddTemplateAttributeRequest  true  "Atributo a asignar"
// @Success      201   {object}  dto.TemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/attributes [post]
func (h *TemplateHandler) AddAttribute(c *fiber.Ctx) error {
	var in dto.AddTemplateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.AttributeKind == "" || in.AttributeID == "" {
		return badRequest(c, "VALIDATION", "attribute_kind y attribute_id son requeridos")
	}
	out, err := h.uc.AddAttribute(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveAttribute godoc
// @Summary      Quitar atributo del template
// @Description  Desactiva la asignación; las specifications de productos existentes no se tocan.
// @Tags         templates
// @Security     Bearer
// @Param        id       path  string  true  "ID del template"
// @Param        attr_id  path  string  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/attributes/{attr_id} [delete]
func (h *TemplateHandler) RemoveAttribute(c *fiber.Ctx) error {
	if err := h.uc.RemoveAttribute(GetCompanyID(c), c.Params("id"), c.Params("attr_id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderAttribute godoc
// @Summary      Cambiar orden de un atributo del template
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Param        id       path  string  true  "ID del template"
// @Param        attr_id  path  string  true  "ID de la asignación"
// @Param        body     body  dto.ReorderTemplateAttributeRequest  true  "Nuevo orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/attributes/{attr_id}/order [put]
func (h *TemplateHandler) ReorderAttribute(c *fiber.Ctx) error {
	var in dto.ReorderTemplateAttributeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := h.uc.ReorderAttribute(GetCompanyID(c), c.Params("id"), c.Params("attr_id"), in.Order); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
