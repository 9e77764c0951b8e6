package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	cases := map[string]string{
		"Medellín":              "medellin",
		"  MEDELLIN ":           "medellin",
		"medellín, Antioquia":   "medellin antioquia",
		"Bogotá  D.C.":          "bogota d c",
		"São   Paulo":           "sao paulo",
		"":                      "",
		"...":                   "",
		"Ciudad de México (MX)": "ciudad de mexico mx",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeCity(in), "input %q", in)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Perro café, con collar rojo y un ojo azul", 3)
	assert.Equal(t, []string{"perro", "cafe", "con", "collar", "rojo", "ojo", "azul"}, got)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+573001234567", NormalizePhone("whatsapp:+57 300 123-4567"))
	assert.Equal(t, "3001234567", NormalizePhone("(300) 123 4567"))
	assert.Equal(t, "", NormalizePhone(" + "))
	assert.Equal(t, "", NormalizePhone(""))
}
