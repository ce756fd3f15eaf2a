// Package slug normaliza nombres a identificadores estables para usarlos
// como claves de specifications (ej: "Tamaño de pantalla" -> "tamano_de_pantalla").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD) y elimina las marcas combinantes.
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte un nombre libre en slug: minúsculas, sin tildes, ñ -> n,
// y cualquier corrida de caracteres no alfanuméricos colapsa a un guión bajo.
func Make(name string) string {
	s, _, err := transform.String(removeDiacritics, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		s = strings.ToLower(strings.TrimSpace(name))
	}
	var b strings.Builder
	lastUnderscore := true // evita guión bajo inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
