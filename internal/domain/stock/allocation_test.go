package stock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/stock"
)

func rows(pairs ...any) []entity.SectorStock {
	out := make([]entity.SectorStock, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entity.SectorStock{
			ProductID: "prod-1",
			SectorID:  pairs[i].(string),
			Quantity:  pairs[i+1].(int),
		})
	}
	return out
}

// El pool sin sectorizar se agota primero; luego los sectores en orden
// ascendente de cantidad. Escenario: S1=3, S2=10, sin sectorizar=2, salida de 8.
func TestPlanDecrement_OrdenDeExtraccion(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 15, rows("S1", 3, "S2", 10), 8)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, entity.PoolUnsectorized, lines[0].Pool)
	assert.Equal(t, 2, lines[0].Quantity, "primero se vacía el pool sin sectorizar")
	assert.Equal(t, 0, lines[0].Resulting)

	assert.Equal(t, "S1", lines[1].SectorID, "sigue el sector con menor cantidad")
	assert.Equal(t, 3, lines[1].Quantity)
	assert.True(t, lines[1].RowDeleted, "S1 queda en 0 y debe eliminarse")

	assert.Equal(t, "S2", lines[2].SectorID)
	assert.Equal(t, 3, lines[2].Quantity)
	assert.Equal(t, 7, lines[2].Resulting)
	assert.False(t, lines[2].RowDeleted)
}

// Los empates de cantidad se resuelven por id de sector ascendente, para que
// dos planes sobre el mismo estado produzcan siempre las mismas líneas.
func TestPlanDecrement_EmpateDeterminista(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 10, rows("SB", 5, "SA", 5), 6)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "SA", lines[0].SectorID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].RowDeleted)
	assert.Equal(t, "SB", lines[1].SectorID)
	assert.Equal(t, 1, lines[1].Quantity)
}

// Una salida que excede el total falla sin producir líneas: el chequeo de
// suficiencia es contra el stock total, nunca parcial.
func TestPlanDecrement_StockInsuficiente(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 5, rows("S1", 3), 9)
	assert.Nil(t, lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, 9, insErr.Requested)
	assert.Equal(t, 5, insErr.Available)
}

// Salida exacta del total: todas las filas quedan en 0 y marcadas para eliminar.
func TestPlanDecrement_VaciaTodo(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 8, rows("S1", 3, "S2", 5), 8)
	require.NoError(t, err)
	require.Len(t, lines, 2, "sin remanente sin sectorizar, solo sectores")
	for _, l := range lines {
		assert.True(t, l.RowDeleted, "sector %s debe eliminarse al llegar a 0", l.SectorID)
		assert.Equal(t, 0, l.Resulting)
	}
}

// Si el pool sin sectorizar alcanza, los sectores no se tocan.
func TestPlanDecrement_SoloPoolSinSectorizar(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 10, rows("S1", 4), 5)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, entity.PoolUnsectorized, lines[0].Pool)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 1, lines[0].Resulting)
}

func TestPlanDecrement_CantidadInvalida(t *testing.T) {
	_, err := stock.PlanDecrement("prod-1", 10, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = stock.PlanDecrement("prod-1", 10, nil, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La suma de las líneas siempre iguala la cantidad pedida (conservación).
func TestPlanDecrement_Conservacion(t *testing.T) {
	lines, err := stock.PlanDecrement("prod-1", 20, rows("S1", 7, "S2", 2, "S3", 6), 13)
	require.NoError(t, err)
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	assert.Equal(t, 13, total)
}
