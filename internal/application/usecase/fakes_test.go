package usecase_test

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
	// stockPositivo simula HasPositiveStock por bodega.
	stockPositivo map[string]bool
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{
		warehouses:    make(map[string]*entity.Warehouse),
		stockPositivo: make(map[string]bool),
	}
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.warehouses, id)
	return nil
}

func (r *fakeWarehouseRepo) ClearMain(companyID string) error {
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			w.IsMain = false
		}
	}
	return nil
}

func (r *fakeWarehouseRepo) HasPositiveStock(warehouseID string) (bool, error) {
	return r.stockPositivo[warehouseID], nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
	// totalStock simula TotalStock por producto.
	totalStock map[string]decimal.Decimal
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[string]*entity.Product),
		totalStock: make(map[string]decimal.Decimal),
	}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (r *fakeProductRepo) TotalStock(productID string) (decimal.Decimal, error) {
	return r.totalStock[productID], nil
}

func (r *fakeProductRepo) ListLowStock(string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListOutOfStock(string) ([]*entity.Product, error) {
	return nil, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) ListByCompany(string, int, int) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountProducts(string) (int, error) {
	return 0, nil
}

type fakeTemplateRepo struct {
	templates map[string]*entity.Template
	attrs     map[string][]*entity.TemplateAttribute
}

var _ repository.TemplateRepository = (*fakeTemplateRepo)(nil)

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{
		templates: make(map[string]*entity.Template),
		attrs:     make(map[string][]*entity.TemplateAttribute),
	}
}

func (r *fakeTemplateRepo) Create(t *entity.Template) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) GetByID(id string) (*entity.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) Update(t *entity.Template) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) ListByCompany(string, int, int) ([]*entity.Template, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Delete(id string) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) CountProducts(string) (int, error) {
	return 0, nil
}

func (r *fakeTemplateRepo) AddAttribute(a *entity.TemplateAttribute) error {
	cp := *a
	r.attrs[a.TemplateID] = append(r.attrs[a.TemplateID], &cp)
	return nil
}

func (r *fakeTemplateRepo) RemoveAttribute(string, string) error {
	return nil
}

func (r *fakeTemplateRepo) ListAttributes(templateID string) ([]*entity.TemplateAttribute, error) {
	return r.attrs[templateID], nil
}

func (r *fakeTemplateRepo) UpdateAttributeOrder(string, string, int) error {
	return nil
}

type fakeAttributeRepo struct {
	globals map[string]*entity.GlobalAttribute
	customs map[string]*entity.CustomAttribute
}

var _ repository.AttributeRepository = (*fakeAttributeRepo)(nil)

func newFakeAttributeRepo() *fakeAttributeRepo {
	return &fakeAttributeRepo{
		globals: make(map[string]*entity.GlobalAttribute),
		customs: make(map[string]*entity.CustomAttribute),
	}
}

func (r *fakeAttributeRepo) CreateGlobal(a *entity.GlobalAttribute) error {
	cp := *a
	r.globals[a.ID] = &cp
	return nil
}

func (r *fakeAttributeRepo) GetGlobalByID(id string) (*entity.GlobalAttribute, error) {
	a, ok := r.globals[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttributeRepo) ListGlobal(int, int) ([]*entity.GlobalAttribute, error) {
	return nil, nil
}

func (r *fakeAttributeRepo) CreateCustom(a *entity.CustomAttribute) error {
	cp := *a
	r.customs[a.ID] = &cp
	return nil
}

func (r *fakeAttributeRepo) GetCustomByID(id string) (*entity.CustomAttribute, error) {
	a, ok := r.customs[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttributeRepo) ListCustomByCompany(string, int, int) ([]*entity.CustomAttribute, error) {
	return nil, nil
}

func (r *fakeAttributeRepo) DeleteCustom(id string) error {
	delete(r.customs, id)
	return nil
}

func (r *fakeAttributeRepo) Resolve(ref entity.AttributeRef) (*entity.Attribute, error) {
	switch ref.Kind {
	case entity.AttributeKindGlobal:
		if a, ok := r.globals[ref.ID]; ok {
			return &entity.Attribute{Name: a.Name, Slug: a.Slug, DataType: a.DataType, UnitOfMeasure: a.UnitOfMeasure}, nil
		}
	case entity.AttributeKindCustom:
		if a, ok := r.customs[ref.ID]; ok {
			return &entity.Attribute{Name: a.Name, Slug: a.Slug, DataType: a.DataType, UnitOfMeasure: a.UnitOfMeasure}, nil
		}
	}
	return nil, nil
}

func (r *fakeAttributeRepo) CountTemplateUses(entity.AttributeRef) (int, error) {
	return 0, nil
}
