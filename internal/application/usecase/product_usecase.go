package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/application/catalog"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca por
// acá: Cost lo actualiza el ledger en entradas con costo unitario y las
// cantidades se manejan vía movimientos.
type ProductUseCase struct {
	repo          repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	templateRepo  repository.TemplateRepository
	specValidator *catalog.SpecValidator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	templateRepo repository.TemplateRepository,
	specValidator *catalog.SpecValidator,
) *ProductUseCase {
	return &ProductUseCase{
		repo:          repo,
		categoryRepo:  categoryRepo,
		templateRepo:  templateRepo,
		specValidator: specValidator,
	}
}

// Create crea un producto. Normaliza el SKU a mayúsculas, verifica que la
// categoría y el template pertenezcan a la empresa y valida specifications
// contra el template antes de persistir.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateMoney(map[string]decimal.Decimal{"price": in.Price, "cost": in.Cost}); err != nil {
		return nil, err
	}
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	existing, _ := uc.repo.GetBySKU(sku)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkCategory(companyID, in.CategoryID); err != nil {
		return nil, err
	}
	specs, err := uc.specValidator.ValidateForTemplate(companyID, in.TemplateID, in.Specifications)
	if err != nil {
		return nil, err
	}
	rawSpecs, err := json.Marshal(specs.Raw())
	if err != nil {
		return nil, err
	}
	unitMeasure := in.UnitMeasure
	if unitMeasure == "" {
		unitMeasure = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		CategoryID:     in.CategoryID,
		TemplateID:     in.TemplateID,
		Name:           in.Name,
		SKU:            sku,
		Barcode:        in.Barcode,
		Price:          in.Price,
		Cost:           in.Cost,
		UnitMeasure:    unitMeasure,
		MinimumStock:   in.MinimumStock,
		Specifications: rawSpecs,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto verificando alcance de empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El template no se cambia después de creado;
// si vienen specifications se revalidan completas contra el template.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	money := map[string]decimal.Decimal{}
	if in.Price != nil {
		money["price"] = *in.Price
	}
	if in.Cost != nil {
		money["cost"] = *in.Cost
	}
	if err := validateMoney(money); err != nil {
		return nil, err
	}
	product, err := uc.scoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(companyID, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.Specifications != nil {
		specs, err := uc.specValidator.ValidateForTemplate(companyID, product.TemplateID, in.Specifications)
		if err != nil {
			return nil, err
		}
		rawSpecs, err := json.Marshal(specs.Raw())
		if err != nil {
			return nil, err
		}
		product.Specifications = rawSpecs
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete desactiva un producto (soft delete). Rechaza con
// domain.ErrProductHasStock si aún tiene stock en alguna bodega.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	if _, err := uc.scoped(companyID, id); err != nil {
		return err
	}
	total, err := uc.repo.TotalStock(id)
	if err != nil {
		return err
	}
	if total.GreaterThan(decimal.Zero) {
		return domain.ErrProductHasStock
	}
	return uc.repo.Delete(id)
}

// ListLowStock lista productos activos con stock positivo bajo su mínimo.
func (uc *ProductUseCase) ListLowStock(companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ListOutOfStock lista productos activos sin stock en ninguna bodega.
func (uc *ProductUseCase) ListOutOfStock(companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListOutOfStock(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// BulkCreate crea productos en lote. Cada ítem se valida y persiste por
// separado; los rechazados quedan en Errors con su posición y SKU para que el
// caller corrija y reintente solo esos.
func (uc *ProductUseCase) BulkCreate(companyID string, in dto.BulkCreateProductsRequest) (*dto.BulkCreateProductsResponse, error) {
	if len(in.Products) == 0 {
		return nil, domain.ValidationErrors{"products": "la lista no puede estar vacía"}
	}
	out := &dto.BulkCreateProductsResponse{Products: make([]dto.ProductResponse, 0, len(in.Products))}
	for i, item := range in.Products {
		created, err := uc.Create(companyID, item)
		if err != nil {
			out.Errors = append(out.Errors, dto.BulkCreateError{
				Index:   i,
				SKU:     item.SKU,
				Message: err.Error(),
			})
			continue
		}
		out.Products = append(out.Products, *created)
	}
	out.Created = len(out.Products)
	return out, nil
}

// Export devuelve el catálogo completo de la empresa para exportar a JSON.
func (uc *ProductUseCase) Export(companyID string) (*dto.ExportProductsResponse, error) {
	const pageSize = 500
	items := make([]dto.ProductResponse, 0, pageSize)
	for offset := 0; ; offset += pageSize {
		page, err := uc.repo.ListByCompany(companyID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			items = append(items, *toProductResponse(p))
		}
		if len(page) < pageSize {
			break
		}
	}
	return &dto.ExportProductsResponse{
		Count:      len(items),
		ExportedAt: time.Now(),
		Products:   items,
	}, nil
}

// ValidateSpecifications valida specifications contra un template sin
// persistir nada. Devuelve los valores canónicos que quedarían guardados.
func (uc *ProductUseCase) ValidateSpecifications(companyID, templateID string, specifications map[string]any) (map[string]any, error) {
	specs, err := uc.specValidator.ValidateForTemplate(companyID, templateID, specifications)
	if err != nil {
		return nil, err
	}
	return specs.Raw(), nil
}

func (uc *ProductUseCase) scoped(companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// validateMoney precio y costo son montos en pesos: no negativos y sin
// decimales.
func validateMoney(fields map[string]decimal.Decimal) error {
	verrs := domain.ValidationErrors{}
	for name, value := range fields {
		if value.IsNegative() {
			verrs[name] = "no puede ser negativo"
		} else if !value.Equal(value.Truncate(0)) {
			verrs[name] = "no admite decimales"
		}
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func (uc *ProductUseCase) checkCategory(companyID, categoryID string) error {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.CompanyID != companyID {
		return domain.ErrCrossCompanyReference
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		CategoryID:     p.CategoryID,
		TemplateID:     p.TemplateID,
		SKU:            p.SKU,
		Name:           p.Name,
		Barcode:        p.Barcode,
		Price:          p.Price,
		Cost:           p.Cost,
		UnitMeasure:    p.UnitMeasure,
		MinimumStock:   p.MinimumStock,
		Specifications: p.Specifications,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
