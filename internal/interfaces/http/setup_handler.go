package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/auth"
	"github.com/tu-usuario/stock-control/internal/application/dto"
)

// SetupHandler onboarding: crea empresa, admin y bodega principal en una llamada.
type SetupHandler struct {
	uc *auth.SetupUseCase
}

// NewSetupHandler construye el handler de setup.
func NewSetupHandler(uc *auth.SetupUseCase) *SetupHandler {
	return &SetupHandler{uc: uc}
}

// Setup godoc
// @Summary      Onboarding de empresa nueva
// @Description  Crea la empresa, su usuario admin y la bodega principal en una transacción de negocio.
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetupRequest  true  "Datos de la empresa y el admin"
// @Success      201   {object}  dto.SetupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/setup [post]
func (h *SetupHandler) Setup(c *fiber.Ctx) error {
	var in dto.SetupRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CompanyName == "" || in.CompanyRUT == "" || in.AdminEmail == "" || in.AdminPassword == "" {
		return badRequest(c, "VALIDATION", "company_name, company_rut, admin_email y admin_password son requeridos")
	}
	if len(in.AdminPassword) < 8 {
		return badRequest(c, "VALIDATION", "admin_password debe tener al menos 8 caracteres")
	}
	out, err := h.uc.Setup(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
