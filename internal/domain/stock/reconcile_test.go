package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sectorial-api/internal/domain/stock"
)

var precio = decimal.NewFromInt(100)

// Gana el conteo más cercano al stock del sistema.
func TestReconcile_GanaElMasCercanoAlSistema(t *testing.T) {
	rec := stock.Reconcile(10, 7, 9, precio)
	assert.Equal(t, 9, rec.FinalQuantity, "B está más cerca de 10 que A")
	assert.Equal(t, 2, rec.DiffBetweenCounts)
	assert.Equal(t, -1, rec.DiffVsSystem)
	assert.True(t, rec.ValueOfDiff.Equal(decimal.NewFromInt(-100)))
}

// En empate de distancia gana el contador A.
func TestReconcile_EmpateFavoreceContadorA(t *testing.T) {
	rec := stock.Reconcile(10, 8, 12, precio)
	assert.Equal(t, 8, rec.FinalQuantity, "con |8-10| == |12-10| gana A")
	assert.Equal(t, -2, rec.DiffVsSystem)
}

// Conteos iguales: sin discrepancia, el valor refleja la deriva contra sistema.
func TestReconcile_ConteosIguales(t *testing.T) {
	rec := stock.Reconcile(10, 12, 12, precio)
	assert.Equal(t, 0, rec.DiffBetweenCounts)
	assert.Equal(t, 12, rec.FinalQuantity)
	assert.Equal(t, 2, rec.DiffVsSystem)
	assert.True(t, rec.ValueOfDiff.Equal(decimal.NewFromInt(200)))
}

// Ambos coinciden con el sistema: diferencia y valor en cero.
func TestReconcile_SinDiferencias(t *testing.T) {
	rec := stock.Reconcile(5, 5, 5, precio)
	assert.Equal(t, 0, rec.DiffVsSystem)
	assert.True(t, rec.ValueOfDiff.IsZero())
}
