package sat

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// El layout de la DIOT exige texto sin diacríticos. La cadena se descompone
// (NFD), se eliminan las marcas combinantes y se recompone (NFC).
var sinDiacriticos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizaTexto elimina acentos y diéresis para campos de texto de la DIOT
// ("Operación Política, S.A." -> "Operacion Politica, S.A."). La entrada ASCII
// se devuelve sin cambios.
func NormalizaTexto(s string) string {
	out, _, err := transform.String(sinDiacriticos, s)
	if err != nil {
		return s
	}
	return out
}
