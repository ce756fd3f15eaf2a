package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ValuationPDFGenerator puerto para generar la representación PDF del
// reporte de valorización.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, companyName string, items []dto.ValuationRowResponse, grandTotal decimal.Decimal) ([]byte, error)
}

// ReportUseCase reportería de inventario: lecturas agregadas sobre los
// saldos y el catálogo. La fuente de verdad sigue siendo StockRecord.
type ReportUseCase struct {
	repo        repository.ReportRepository
	companyRepo repository.CompanyRepository
	generator   ValuationPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, companyRepo repository.CompanyRepository, generator ValuationPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, companyRepo: companyRepo, generator: generator}
}

// Valuation valoriza el stock (cantidad x costo promedio) por producto y
// bodega, con total general. warehouseID vacío incluye todas las bodegas.
func (uc *ReportUseCase) Valuation(companyID, warehouseID string) (*dto.ValuationReportResponse, error) {
	rows, err := uc.repo.Valuation(companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ValuationRowResponse, 0, len(rows))
	grandTotal := decimal.Zero
	for _, r := range rows {
		items = append(items, dto.ValuationRowResponse{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			Warehouse:   r.Warehouse,
			Quantity:    r.Quantity,
			UnitCost:    r.UnitCost,
			TotalValue:  r.TotalValue,
		})
		grandTotal = grandTotal.Add(r.TotalValue)
	}
	return &dto.ValuationReportResponse{Items: items, GrandTotal: grandTotal}, nil
}

// ValuationPDF genera el reporte de valorización como PDF descargable.
func (uc *ReportUseCase) ValuationPDF(ctx context.Context, companyID, warehouseID string) (pdfBytes []byte, filename string, err error) {
	report, err := uc.Valuation(companyID, warehouseID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.generator.GenerateValuationPDF(ctx, company.Name, report.Items, report.GrandTotal)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("valorizacion_%s.pdf", time.Now().Format("2006-01-02"))
	return pdfBytes, filename, nil
}

// StockAlerts lista productos bajo su stock mínimo o agotados.
func (uc *ReportUseCase) StockAlerts(companyID string) ([]dto.StockAlertResponse, error) {
	rows, err := uc.repo.StockAlerts(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockAlertResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockAlertResponse{
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			ProductName:  r.ProductName,
			TotalStock:   r.TotalStock,
			MinimumStock: r.MinimumStock,
			AlertType:    r.AlertType,
		})
	}
	return items, nil
}

// CategoryAnalysis agrega stock y valor de inventario por categoría.
func (uc *ReportUseCase) CategoryAnalysis(companyID string) ([]dto.CategoryAnalysisResponse, error) {
	rows, err := uc.repo.CategoryAnalysis(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryAnalysisResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.CategoryAnalysisResponse{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			ProductCount: r.ProductCount,
			TotalStock:   r.TotalStock,
			TotalValue:   r.TotalValue,
		})
	}
	return items, nil
}

// TopProducts lista los productos con mayor valor de inventario.
func (uc *ReportUseCase) TopProducts(companyID string, limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.repo.TopProducts(companyID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopProductResponse{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			TotalStock:  r.TotalStock,
			StockValue:  r.StockValue,
		})
	}
	return items, nil
}
