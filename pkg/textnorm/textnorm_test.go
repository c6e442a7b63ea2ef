package textnorm_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/clubmerch-api/pkg/textnorm"
)

func TestCode(t *testing.T) {
	cases := map[string]string{
		"C.D. Leganés Fútbol Sala": "C-D-LEGANES-FUTBOL-SALA",
		"  Peñarol  ":              "PENAROL",
		"Club Atlético 1903!":      "CLUB-ATLETICO-1903",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, textnorm.Code(in), in)
	}
}

func TestFoldAndContains(t *testing.T) {
	assert.Equal(t, "maria jose", textnorm.Fold("María José"))
	assert.True(t, textnorm.Contains("Camiseta Edición Especial", "edicion"))
	assert.False(t, textnorm.Contains("Sudadera", "camiseta"))
}

func TestMoney(t *testing.T) {
	assert.Contains(t, textnorm.Money(decimal.RequireFromString("12345.5")), ",50 €")
	assert.Contains(t, textnorm.Money(decimal.Zero), "0,00 €")
}
