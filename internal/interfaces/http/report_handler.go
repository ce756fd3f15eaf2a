package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/usecase"
)

// ReportHandler reportería de inventario (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Description  Cantidad por costo promedio, por producto y bodega. Con format=pdf descarga el reporte en PDF.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        format        query  string  false  "pdf para descargar"
// @Success      200  {object}  dto.ValuationReportResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	warehouseID := c.Query("warehouse_id")

	if c.Query("format") == "pdf" {
		pdfBytes, filename, err := h.uc.ValuationPDF(c.UserContext(), companyID, warehouseID)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(pdfBytes)
	}

	out, err := h.uc.Valuation(companyID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockAlerts godoc
// @Summary      Alertas de stock
// @Description  Productos activos bajo su stock mínimo o agotados.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/reports/stock-alerts [get]
func (h *ReportHandler) StockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.StockAlerts(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CategoryAnalysis godoc
// @Summary      Análisis por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryAnalysisResponse
// @Router       /api/reports/category-analysis [get]
func (h *ReportHandler) CategoryAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.CategoryAnalysis(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con mayor valor de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {array}  dto.TopProductResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(GetCompanyID(c), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
