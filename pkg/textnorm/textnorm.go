// Package textnorm normaliza textos de usuario: códigos de club a partir de
// nombres con tildes, búsquedas sin acentos e importes en formato español.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var printer = message.NewPrinter(language.Spanish)

// Fold quita tildes y diacríticos y pasa a minúsculas ("Peñarol Atlético" -> "penarol atletico").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Code construye el código de un club: mayúsculas sin tildes y guiones entre palabras.
// "C.D. Leganés Fútbol Sala" -> "C-D-LEGANES-FUTBOL-SALA".
func Code(name string) string {
	folded := Fold(name)
	var b strings.Builder
	dash := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Contains compara sin tildes ni mayúsculas.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Money formatea un importe en euros con separadores españoles.
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f €", f)
}
