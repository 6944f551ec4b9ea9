package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

const (
	coID   = "co-1"
	userID = "user-1"
	prodID = "prod-1"
)

type fixture struct {
	products     *fakeProductRepo
	sectors      *fakeSectorRepo
	sectorStocks *fakeSectorStockRepo
	movements    *fakeMovementRepo
	allocate     *appstock.AllocateUseCase
	assign       *appstock.AssignSectorUseCase
	consistency  *appstock.ConsistencyUseCase
}

func newFixture(totalStock int) *fixture {
	products := newFakeProductRepo(&entity.Product{
		ID: prodID, CompanyID: coID, SKU: "SKU-1", Name: "Tornillos",
		Price: decimal.NewFromInt(500), TotalStock: totalStock,
	})
	sectors := newFakeSectorRepo(
		&entity.Sector{ID: "S1", CompanyID: coID, Name: "Estantería 1"},
		&entity.Sector{ID: "S2", CompanyID: coID, Name: "Estantería 2"},
	)
	sectorStocks := newFakeSectorStockRepo(products, sectors)
	movements := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: products, sectorStocks: sectorStocks, movements: movements}
	log := quietLogger()
	return &fixture{
		products:     products,
		sectors:      sectors,
		sectorStocks: sectorStocks,
		movements:    movements,
		allocate:     appstock.NewAllocateUseCase(tx, products, log),
		assign:       appstock.NewAssignSectorUseCase(tx, products, sectors, log),
		consistency:  appstock.NewConsistencyUseCase(tx, products, sectorStocks, log),
	}
}

func (f *fixture) totalStock(t *testing.T) int {
	t.Helper()
	p, err := f.products.GetByID(prodID)
	require.NoError(t, err)
	return p.TotalStock
}

func (f *fixture) sectorSum(t *testing.T) int {
	t.Helper()
	rows, err := f.sectorStocks.ListByProduct(prodID)
	require.NoError(t, err)
	sum := 0
	for _, r := range rows {
		sum += r.Quantity
	}
	return sum
}

// Escenario completo: S1=3, S2=10, sin sectorizar=2, salida de 8. El recibo
// debe vaciar el pool sin sectorizar, eliminar S1 y dejar S2 en 7.
func TestDecrement_OrdenYRecibo(t *testing.T) {
	f := newFixture(15)
	f.sectorStocks.seed(prodID, "S1", 3)
	f.sectorStocks.seed(prodID, "S2", 10)

	receipt, err := f.allocate.Decrement(context.Background(), coID, userID, prodID, 8, "venta")
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 3)
	assert.Equal(t, -8, receipt.Delta)

	assert.Equal(t, 7, f.totalStock(t))
	assert.Equal(t, 7, f.sectorSum(t))

	s1, _ := f.sectorStocks.Get(prodID, "S1")
	assert.Nil(t, s1, "S1 llegó a 0 y debe desaparecer del libro")
	s2, _ := f.sectorStocks.Get(prodID, "S2")
	require.NotNil(t, s2)
	assert.Equal(t, 7, s2.Quantity)

	// Cada línea del recibo queda persistida como movimiento con el mismo tx.
	trail, err := f.movements.ListByTransaction(receipt.TransactionID)
	require.NoError(t, err)
	assert.Len(t, trail, 3)
}

// La salida insuficiente falla con el faltante exacto y no muta nada.
func TestDecrement_InsuficienciaAtomica(t *testing.T) {
	f := newFixture(5)
	f.sectorStocks.seed(prodID, "S1", 3)

	_, err := f.allocate.Decrement(context.Background(), coID, userID, prodID, 9, "venta")
	require.Error(t, err)
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, 5, insErr.Available)

	assert.Equal(t, 5, f.totalStock(t), "el libro no debe cambiar")
	assert.Equal(t, 3, f.sectorSum(t))
	assert.Empty(t, f.movements.movements, "sin líneas de recibo en un fallo")
}

// Las entradas siempre llegan al pool sin sectorizar.
func TestIncrement_EntraSinSectorizar(t *testing.T) {
	f := newFixture(4)
	f.sectorStocks.seed(prodID, "S1", 4)

	receipt, err := f.allocate.Increment(context.Background(), coID, userID, prodID, 6, "compra")
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, entity.PoolUnsectorized, receipt.Lines[0].Pool)
	assert.Equal(t, 6, receipt.Lines[0].Resulting)

	assert.Equal(t, 10, f.totalStock(t))
	assert.Equal(t, 4, f.sectorSum(t), "los sectores no se tocan en una entrada")
}

// Allocate despacha por signo; delta cero es inválido.
func TestAllocate_DespachoPorSigno(t *testing.T) {
	f := newFixture(10)

	_, err := f.allocate.Allocate(context.Background(), coID, userID, prodID, 0, "nada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	receipt, err := f.allocate.Allocate(context.Background(), coID, userID, prodID, 3, "entrada")
	require.NoError(t, err)
	assert.Equal(t, 3, receipt.Delta)

	receipt, err = f.allocate.Allocate(context.Background(), coID, userID, prodID, -5, "salida")
	require.NoError(t, err)
	assert.Equal(t, -5, receipt.Delta)
	assert.Equal(t, 8, f.totalStock(t))
}

// Acceso cruzado entre empresas responde NotFound, sin filtrar existencia.
func TestAllocate_TenantCruzado(t *testing.T) {
	f := newFixture(10)
	_, err := f.allocate.Decrement(context.Background(), "otra-empresa", userID, prodID, 1, "venta")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La etiqueta de sector se limpia cuando el stock llega a 0.
func TestDecrement_LimpiaEtiquetaEnCero(t *testing.T) {
	f := newFixture(5)
	f.products.products[prodID].SectorTag = "S1"
	f.sectorStocks.seed(prodID, "S1", 5)

	_, err := f.allocate.Decrement(context.Background(), coID, userID, prodID, 5, "venta")
	require.NoError(t, err)
	p, _ := f.products.GetByID(prodID)
	assert.Equal(t, 0, p.TotalStock)
	assert.Empty(t, p.SectorTag)
}
