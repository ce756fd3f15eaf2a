package entity

import "encoding/json"

// SpecValue valor etiquetado de una specification ya validada.
// El tipo (tag) lo define el atributo del template; Value guarda la forma
// canónica: string para text/date (fecha normalizada YYYY-MM-DD), float64
// para number, bool para boolean y string canónico para decimal (preserva
// precisión en JSON).
type SpecValue struct {
	DataType DataType
	Value    any
}

// MarshalJSON serializa solo el valor canónico; el tag se reconstruye
// desde el template al validar de nuevo.
func (v SpecValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Value)
}

// SpecMap mapa slug -> valor validado de specifications.
type SpecMap map[string]SpecValue

// Raw devuelve el mapa con los valores canónicos sin tag, listo para
// persistir como JSONB o devolver en una respuesta.
func (m SpecMap) Raw() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Value
	}
	return out
}
