package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// Formatos de fecha aceptados en specifications (formatos chilenos).
var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// TemplateAttributeView atributo de template ya resuelto (global o custom),
// listo para validar.
type TemplateAttributeView struct {
	Attribute    entity.Attribute
	IsRequired   bool
	DefaultValue string
	Order        int
}

// SpecValidator valida el mapa de specifications de un producto contra las
// definiciones de atributos de su template.
type SpecValidator struct {
	templateRepo repository.TemplateRepository
	attrRepo     repository.AttributeRepository
}

// NewSpecValidator construye el validador.
func NewSpecValidator(templateRepo repository.TemplateRepository, attrRepo repository.AttributeRepository) *SpecValidator {
	return &SpecValidator{templateRepo: templateRepo, attrRepo: attrRepo}
}

// ValidateForTemplate carga los atributos activos del template (verificando
// alcance de empresa), los resuelve y valida specifications contra ellos.
func (v *SpecValidator) ValidateForTemplate(companyID, templateID string, specifications map[string]any) (entity.SpecMap, error) {
	template, err := v.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil || template.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	attrs, err := v.templateRepo.ListAttributes(templateID)
	if err != nil {
		return nil, err
	}
	views := make([]TemplateAttributeView, 0, len(attrs))
	for _, ta := range attrs {
		resolved, err := v.attrRepo.Resolve(ta.Attribute)
		if err != nil {
			return nil, err
		}
		views = append(views, TemplateAttributeView{
			Attribute:    *resolved,
			IsRequired:   ta.IsRequired,
			DefaultValue: ta.DefaultValue,
			Order:        ta.Order,
		})
	}
	return Validate(views, specifications)
}

// Validate coerciona cada valor según el data_type de su atributo y acumula
// todos los errores por campo (no fail-fast). Claves fuera del template se
// rechazan: no hay campos de extensión.
func Validate(attrs []TemplateAttributeView, specifications map[string]any) (entity.SpecMap, error) {
	errs := domain.ValidationErrors{}
	validated := entity.SpecMap{}
	known := make(map[string]struct{}, len(attrs))

	for _, ta := range attrs {
		slug := ta.Attribute.Slug
		known[slug] = struct{}{}
		value, supplied := specifications[slug]

		// Faltante: nil o string vacío cuentan como no provisto; 0 y false no.
		if missingValue(value) || !supplied {
			if !ta.IsRequired {
				continue
			}
			if ta.DefaultValue == "" {
				errs[slug] = fmt.Sprintf("%s es obligatorio", ta.Attribute.Name)
				continue
			}
			value = ta.DefaultValue
		}

		coerced, err := coerceValue(value, ta.Attribute.DataType, ta.Attribute.Name)
		if err != nil {
			errs[slug] = err.Error()
			continue
		}
		validated[slug] = coerced
	}

	unknown := make([]string, 0)
	for key := range specifications {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		errs["specifications"] = "atributos desconocidos fuera del template: " + strings.Join(unknown, ", ")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return validated, nil
}

func missingValue(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// coerceValue valida y normaliza un valor individual según su data_type.
func coerceValue(value any, dataType entity.DataType, attrName string) (entity.SpecValue, error) {
	switch dataType {
	case entity.DataTypeText:
		s, ok := value.(string)
		if !ok {
			return entity.SpecValue{}, fmt.Errorf("%s debe ser texto", attrName)
		}
		return entity.SpecValue{DataType: dataType, Value: strings.TrimSpace(s)}, nil

	case entity.DataTypeNumber:
		f, err := toFloat(value)
		if err != nil {
			return entity.SpecValue{}, fmt.Errorf("%s debe ser un número válido", attrName)
		}
		return entity.SpecValue{DataType: dataType, Value: f}, nil

	case entity.DataTypeDecimal:
		d, err := toDecimal(value)
		if err != nil {
			return entity.SpecValue{}, fmt.Errorf("%s debe ser un decimal válido", attrName)
		}
		// Forma canónica como string: preserva precisión en JSON.
		return entity.SpecValue{DataType: dataType, Value: d.String()}, nil

	case entity.DataTypeBoolean:
		if b, ok := value.(bool); ok {
			return entity.SpecValue{DataType: dataType, Value: b}, nil
		}
		if s, ok := value.(string); ok {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "true", "1", "yes", "si", "sí":
				return entity.SpecValue{DataType: dataType, Value: true}, nil
			case "false", "0", "no":
				return entity.SpecValue{DataType: dataType, Value: false}, nil
			}
		}
		return entity.SpecValue{}, fmt.Errorf("%s debe ser true/false", attrName)

	case entity.DataTypeDate:
		s, ok := value.(string)
		if !ok {
			return entity.SpecValue{}, fmt.Errorf("%s debe ser una fecha en texto", attrName)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return entity.SpecValue{DataType: dataType, Value: t.Format("2006-01-02")}, nil
			}
		}
		return entity.SpecValue{}, fmt.Errorf("%s debe ser una fecha válida (YYYY-MM-DD, DD-MM-YYYY o DD/MM/YYYY)", attrName)
	}
	return entity.SpecValue{}, fmt.Errorf("%s tiene un tipo de dato desconocido", attrName)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("tipo no numérico %T", value)
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}
	return decimal.Decimal{}, fmt.Errorf("tipo no decimal %T", value)
}
