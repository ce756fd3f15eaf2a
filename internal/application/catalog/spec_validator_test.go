package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/catalog"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func attr(name, slug string, dataType entity.DataType, required bool, defaultValue string) catalog.TemplateAttributeView {
	return catalog.TemplateAttributeView{
		Attribute:    entity.Attribute{Name: name, Slug: slug, DataType: dataType},
		IsRequired:   required,
		DefaultValue: defaultValue,
	}
}

// requireValidationError valida que err sea ValidationErrors y la devuelve.
func requireValidationError(t *testing.T, err error) domain.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	var verr domain.ValidationErrors
	require.True(t, errors.As(err, &verr), "se esperaba ValidationErrors, se obtuvo %T", err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	return verr
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación contra un template típico (marca requerida, ram opcional)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_TemplateNotebook(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Marca", "marca", entity.DataTypeText, true, ""),
		attr("Memoria RAM", "ram_gb", entity.DataTypeNumber, false, ""),
	}

	specs, err := catalog.Validate(attrs, map[string]any{
		"marca":  "Lenovo",
		"ram_gb": 16,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lenovo", specs["marca"].Value)
	assert.Equal(t, float64(16), specs["ram_gb"].Value)
}

func TestValidate_RequeridoFaltante(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Marca", "marca", entity.DataTypeText, true, ""),
	}

	for name, specs := range map[string]map[string]any{
		"sin la clave":   {},
		"valor nil":      {"marca": nil},
		"string vacío":   {"marca": ""},
	} {
		_, err := catalog.Validate(attrs, specs)
		verr := requireValidationError(t, err)
		assert.Contains(t, verr["marca"], "obligatorio", "caso %q", name)
	}
}

// Cero y false son valores reales, no faltantes.
func TestValidate_CeroYFalseNoSonFaltantes(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Peso", "peso", entity.DataTypeNumber, true, ""),
		attr("Refurbished", "refurbished", entity.DataTypeBoolean, true, ""),
	}

	specs, err := catalog.Validate(attrs, map[string]any{
		"peso":        0,
		"refurbished": false,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), specs["peso"].Value)
	assert.Equal(t, false, specs["refurbished"].Value)
}

func TestValidate_DefaultSustituyeAlFaltante(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Garantía", "garantia_meses", entity.DataTypeNumber, true, "12"),
	}

	specs, err := catalog.Validate(attrs, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, float64(12), specs["garantia_meses"].Value)
}

func TestValidate_OpcionalAusenteSeOmite(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Color", "color", entity.DataTypeText, false, ""),
	}

	specs, err := catalog.Validate(attrs, map[string]any{})
	require.NoError(t, err)
	_, present := specs["color"]
	assert.False(t, present, "un opcional ausente no aparece en el resultado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Coerciones por tipo de dato
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CoercionBoolean(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Incluye cargador", "incluye_cargador", entity.DataTypeBoolean, true, ""),
	}

	truthy := []any{true, "true", "1", "yes", "si", "sí", "SÍ", " Si "}
	for _, v := range truthy {
		specs, err := catalog.Validate(attrs, map[string]any{"incluye_cargador": v})
		require.NoError(t, err, "valor %v", v)
		assert.Equal(t, true, specs["incluye_cargador"].Value, "valor %v", v)
	}

	falsy := []any{false, "false", "no", "No"}
	for _, v := range falsy {
		specs, err := catalog.Validate(attrs, map[string]any{"incluye_cargador": v})
		require.NoError(t, err, "valor %v", v)
		assert.Equal(t, false, specs["incluye_cargador"].Value, "valor %v", v)
	}

	_, err := catalog.Validate(attrs, map[string]any{"incluye_cargador": "quizás"})
	verr := requireValidationError(t, err)
	assert.Contains(t, verr["incluye_cargador"], "true/false")
}

func TestValidate_CoercionFecha(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Fecha de compra", "fecha_compra", entity.DataTypeDate, true, ""),
	}

	// Los tres formatos aceptados normalizan a YYYY-MM-DD.
	for _, raw := range []string{"2025-03-15", "15-03-2025", "15/03/2025"} {
		specs, err := catalog.Validate(attrs, map[string]any{"fecha_compra": raw})
		require.NoError(t, err, "formato %s", raw)
		assert.Equal(t, "2025-03-15", specs["fecha_compra"].Value, "formato %s", raw)
	}

	_, err := catalog.Validate(attrs, map[string]any{"fecha_compra": "15.03.2025"})
	requireValidationError(t, err)
}

func TestValidate_CoercionDecimal(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Pantalla", "pulgadas", entity.DataTypeDecimal, true, ""),
	}

	// Se guarda la forma canónica como string.
	specs, err := catalog.Validate(attrs, map[string]any{"pulgadas": "15.60"})
	require.NoError(t, err)
	assert.Equal(t, "15.6", specs["pulgadas"].Value)

	specs, err = catalog.Validate(attrs, map[string]any{"pulgadas": 14})
	require.NoError(t, err)
	assert.Equal(t, "14", specs["pulgadas"].Value)

	_, err = catalog.Validate(attrs, map[string]any{"pulgadas": "grande"})
	requireValidationError(t, err)
}

func TestValidate_CoercionNumero(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Núcleos", "nucleos", entity.DataTypeNumber, true, ""),
	}

	for raw, want := range map[any]float64{"8": 8, 8: 8, 7.5: 7.5} {
		specs, err := catalog.Validate(attrs, map[string]any{"nucleos": raw})
		require.NoError(t, err, "valor %v", raw)
		assert.Equal(t, want, specs["nucleos"].Value)
	}

	_, err := catalog.Validate(attrs, map[string]any{"nucleos": "ocho"})
	requireValidationError(t, err)
}

func TestValidate_TextoSeRecorta(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Modelo", "modelo", entity.DataTypeText, true, ""),
	}

	specs, err := catalog.Validate(attrs, map[string]any{"modelo": "  ThinkPad X1  "})
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad X1", specs["modelo"].Value)

	_, err = catalog.Validate(attrs, map[string]any{"modelo": 123})
	requireValidationError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Claves desconocidas y acumulación de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ClavesDesconocidas(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Marca", "marca", entity.DataTypeText, true, ""),
	}

	_, err := catalog.Validate(attrs, map[string]any{
		"marca":    "HP",
		"invented": "x",
	})
	verr := requireValidationError(t, err)
	assert.Contains(t, verr["specifications"], "invented")
}

func TestValidate_AcumulaTodosLosErrores(t *testing.T) {
	attrs := []catalog.TemplateAttributeView{
		attr("Marca", "marca", entity.DataTypeText, true, ""),
		attr("Núcleos", "nucleos", entity.DataTypeNumber, true, ""),
		attr("Fecha de compra", "fecha_compra", entity.DataTypeDate, true, ""),
	}

	// Tres campos malos en una sola pasada: los tres deben reportarse.
	_, err := catalog.Validate(attrs, map[string]any{
		"nucleos":      "ocho",
		"fecha_compra": "ayer",
	})
	verr := requireValidationError(t, err)
	assert.Len(t, verr, 3)
	assert.Contains(t, verr, "marca")
	assert.Contains(t, verr, "nucleos")
	assert.Contains(t, verr, "fecha_compra")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateForTemplate: alcance de empresa y resolución de atributos
// ──────────────────────────────────────────────────────────────────────────────

type fakeTemplateRepo struct {
	templates map[string]*entity.Template
	attrs     map[string][]*entity.TemplateAttribute
}

func (r *fakeTemplateRepo) Create(*entity.Template) error  { return errors.New("no implementado en fake") }
func (r *fakeTemplateRepo) Update(*entity.Template) error  { return errors.New("no implementado en fake") }
func (r *fakeTemplateRepo) Delete(string) error            { return errors.New("no implementado en fake") }
func (r *fakeTemplateRepo) CountProducts(string) (int, error) {
	return 0, errors.New("no implementado en fake")
}
func (r *fakeTemplateRepo) ListByCompany(string, int, int) ([]*entity.Template, error) {
	return nil, errors.New("no implementado en fake")
}
func (r *fakeTemplateRepo) AddAttribute(*entity.TemplateAttribute) error {
	return errors.New("no implementado en fake")
}
func (r *fakeTemplateRepo) RemoveAttribute(string, string) error {
	return errors.New("no implementado en fake")
}
func (r *fakeTemplateRepo) UpdateAttributeOrder(string, string, int) error {
	return errors.New("no implementado en fake")
}

func (r *fakeTemplateRepo) GetByID(id string) (*entity.Template, error) {
	return r.templates[id], nil
}

func (r *fakeTemplateRepo) ListAttributes(templateID string) ([]*entity.TemplateAttribute, error) {
	return r.attrs[templateID], nil
}

type fakeAttributeRepo struct {
	resolved map[entity.AttributeRef]*entity.Attribute
}

func (r *fakeAttributeRepo) CreateGlobal(*entity.GlobalAttribute) error {
	return errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) GetGlobalByID(string) (*entity.GlobalAttribute, error) {
	return nil, errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) ListGlobal(int, int) ([]*entity.GlobalAttribute, error) {
	return nil, errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) CreateCustom(*entity.CustomAttribute) error {
	return errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) GetCustomByID(string) (*entity.CustomAttribute, error) {
	return nil, errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) ListCustomByCompany(string, int, int) ([]*entity.CustomAttribute, error) {
	return nil, errors.New("no implementado en fake")
}
func (r *fakeAttributeRepo) DeleteCustom(string) error { return errors.New("no implementado en fake") }
func (r *fakeAttributeRepo) CountTemplateUses(entity.AttributeRef) (int, error) {
	return 0, errors.New("no implementado en fake")
}

func (r *fakeAttributeRepo) Resolve(ref entity.AttributeRef) (*entity.Attribute, error) {
	a, ok := r.resolved[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func TestValidateForTemplate(t *testing.T) {
	const companyID = "emp-1"
	const templateID = "tpl-1"

	templateRepo := &fakeTemplateRepo{
		templates: map[string]*entity.Template{
			templateID: {ID: templateID, CompanyID: companyID, Name: "Notebooks"},
		},
		attrs: map[string][]*entity.TemplateAttribute{
			templateID: {
				{ID: "ta-1", TemplateID: templateID, Attribute: entity.GlobalRef("g-marca"), IsRequired: true},
				{ID: "ta-2", TemplateID: templateID, Attribute: entity.CustomRef("c-serie"), IsRequired: false},
			},
		},
	}
	attrRepo := &fakeAttributeRepo{
		resolved: map[entity.AttributeRef]*entity.Attribute{
			entity.GlobalRef("g-marca"): {Name: "Marca", Slug: "marca", DataType: entity.DataTypeText},
			entity.CustomRef("c-serie"): {Name: "Serie", Slug: "serie", DataType: entity.DataTypeText},
		},
	}
	validator := catalog.NewSpecValidator(templateRepo, attrRepo)

	specs, err := validator.ValidateForTemplate(companyID, templateID, map[string]any{
		"marca": "Dell",
		"serie": "X-99",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dell", specs["marca"].Value)
	assert.Equal(t, "X-99", specs["serie"].Value)

	// Un template de otra empresa es invisible.
	_, err = validator.ValidateForTemplate("otra-empresa", templateID, map[string]any{"marca": "Dell"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = validator.ValidateForTemplate(companyID, "tpl-inexistente", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
