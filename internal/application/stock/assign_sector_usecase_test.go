package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

// Sectorizar mueve unidades del pool sin sectorizar al sector; el total no cambia.
func TestAssignToSector_RedistribuyeSinCambiarTotal(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 2)

	receipt, err := f.assign.AssignToSector(context.Background(), coID, userID, prodID, "S2", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.Delta, "la sectorización no altera el stock total")
	require.Len(t, receipt.Lines, 2)

	assert.Equal(t, 10, f.totalStock(t))
	s2, _ := f.sectorStocks.Get(prodID, "S2")
	require.NotNil(t, s2)
	assert.Equal(t, 5, s2.Quantity)

	p, _ := f.products.GetByID(prodID)
	assert.Equal(t, "S2", p.SectorTag)
}

// No se puede sectorizar más de lo que queda sin sectorizar.
func TestAssignToSector_RemanenteInsuficiente(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 8)

	_, err := f.assign.AssignToSector(context.Background(), coID, userID, prodID, "S2", 5)
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, 2, insErr.Available, "solo quedan 2 sin sectorizar")
}

// Sectorizar sobre una fila existente acumula.
func TestAssignToSector_Acumula(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 3)

	_, err := f.assign.AssignToSector(context.Background(), coID, userID, prodID, "S1", 4)
	require.NoError(t, err)
	s1, _ := f.sectorStocks.Get(prodID, "S1")
	assert.Equal(t, 7, s1.Quantity)
}

// Devolver al pool elimina la fila si queda en 0.
func TestReturnToUnsectorized_EliminaFilaEnCero(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 4)

	receipt, err := f.assign.ReturnToUnsectorized(context.Background(), coID, userID, prodID, "S1", 4)
	require.NoError(t, err)
	assert.True(t, receipt.Lines[0].RowDeleted)

	s1, _ := f.sectorStocks.Get(prodID, "S1")
	assert.Nil(t, s1)
	assert.Equal(t, 10, f.totalStock(t))
}

// No se puede devolver más de lo que el sector tiene.
func TestReturnToUnsectorized_ExcedeLoSectorizado(t *testing.T) {
	f := newFixture(10)
	f.sectorStocks.seed(prodID, "S1", 2)

	_, err := f.assign.ReturnToUnsectorized(context.Background(), coID, userID, prodID, "S1", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// El sector debe pertenecer a la misma empresa que el producto.
func TestAssignToSector_SectorDeOtraEmpresa(t *testing.T) {
	f := newFixture(10)
	f.sectors.sectors["SX"] = &entity.Sector{ID: "SX", CompanyID: "otra-empresa"}

	_, err := f.assign.AssignToSector(context.Background(), coID, userID, prodID, "SX", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
