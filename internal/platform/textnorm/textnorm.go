// Package textnorm normaliza textos libres (ciudades, teléfonos, descripciones)
// para poder compararlos sin depender de tildes, mayúsculas ni puntuación.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold pasa a minúsculas, quita diacríticos, reemplaza puntuación por espacios
// y colapsa espacios. "  Medellín,  Antioquia " -> "medellin antioquia".
func Fold(s string) string {
	s = stripDiacritics(s)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		// puntuación, símbolos y espacios cuentan como separador
		if !space && b.Len() > 0 {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizeCity es la forma comparable de una ciudad escrita a mano.
func NormalizeCity(city string) string {
	return Fold(city)
}

// Tokens devuelve las palabras de Fold(s) con al menos minLen runas.
func Tokens(s string, minLen int) []string {
	parts := strings.Fields(Fold(s))
	out := parts[:0]
	for _, p := range parts {
		if len([]rune(p)) >= minLen {
			out = append(out, p)
		}
	}
	return out
}

// NormalizePhone deja solo dígitos y un '+' inicial; quita el prefijo "whatsapp:".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if i := strings.Index(strings.ToLower(phone), "whatsapp:"); i == 0 {
		phone = phone[len("whatsapp:"):]
	}
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
