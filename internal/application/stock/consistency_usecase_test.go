package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verify reporta la deriva sin tocar el libro.
func TestVerify_ReportaSinCorregir(t *testing.T) {
	f := newFixture(5)
	f.sectorStocks.seed(prodID, "S1", 4)
	f.sectorStocks.seed(prodID, "S2", 4)

	report, err := f.consistency.Verify(context.Background(), coID, prodID)
	require.NoError(t, err)
	assert.False(t, report.IsConsistent)
	assert.Equal(t, -3, report.Unsectorized)

	// Nada cambió: Verify es de solo lectura.
	assert.Equal(t, 5, f.totalStock(t))
	assert.Equal(t, 8, f.sectorSum(t))
}

// Compact elimina solo filas <= 0 y es idempotente.
func TestCompact_Idempotente(t *testing.T) {
	f := newFixture(7)
	f.sectorStocks.seed(prodID, "S1", 0)
	f.sectorStocks.seed(prodID, "S2", 7)

	require.NoError(t, f.consistency.Compact(context.Background(), coID, prodID))
	rows, _ := f.sectorStocks.ListByProduct(prodID)
	require.Len(t, rows, 1)
	assert.Equal(t, "S2", rows[0].SectorID)

	// Segunda pasada: sin cambios.
	require.NoError(t, f.consistency.Compact(context.Background(), coID, prodID))
	rows, _ = f.sectorStocks.ListByProduct(prodID)
	assert.Len(t, rows, 1)
}

// Compact limpia la etiqueta de sector si el total quedó en 0.
func TestCompact_LimpiaEtiqueta(t *testing.T) {
	f := newFixture(0)
	f.products.products[prodID].SectorTag = "S1"

	require.NoError(t, f.consistency.Compact(context.Background(), coID, prodID))
	p, _ := f.products.GetByID(prodID)
	assert.Empty(t, p.SectorTag)
}

// PruneOrphans barre filas cuyo producto o sector ya no existe.
func TestPruneOrphans(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 3)
	f.sectorStocks.seed("prod-borrado", "S1", 2)
	f.sectorStocks.seed(prodID, "sector-borrado", 4)

	pruned, err := f.consistency.PruneOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	rows, _ := f.sectorStocks.ListByProduct(prodID)
	require.Len(t, rows, 1)
	assert.Equal(t, "S1", rows[0].SectorID)
}
