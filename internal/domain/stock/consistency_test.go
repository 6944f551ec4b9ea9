package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/stock"
)

func producto(total int) *entity.Product {
	return &entity.Product{ID: "prod-1", CompanyID: "co-1", TotalStock: total}
}

func TestBuildConsistencyReport_LibroSano(t *testing.T) {
	report := stock.BuildConsistencyReport(producto(10), rows("S1", 3, "S2", 5))
	assert.True(t, report.IsConsistent)
	assert.Equal(t, 8, report.SectorSum)
	assert.Equal(t, 2, report.Unsectorized)
	assert.Empty(t, report.Details)
}

// La suma por sectores mayor al total implica deriva: se reporta, no se recorta.
func TestBuildConsistencyReport_SectoresExcedenTotal(t *testing.T) {
	report := stock.BuildConsistencyReport(producto(5), rows("S1", 4, "S2", 4))
	assert.False(t, report.IsConsistent)
	assert.Equal(t, -3, report.Unsectorized)
	assert.NotEmpty(t, report.Details)
}

func TestBuildConsistencyReport_FilasNegativasYEnCero(t *testing.T) {
	report := stock.BuildConsistencyReport(producto(10), rows("S1", -2, "S2", 0, "S3", 5))
	assert.False(t, report.IsConsistent)
	assert.Equal(t, []string{"S1"}, report.NegativeRows)
	assert.Equal(t, []string{"S2"}, report.ZeroRows)
}

func TestBuildConsistencyReport_TotalNegativo(t *testing.T) {
	report := stock.BuildConsistencyReport(producto(-1), nil)
	assert.False(t, report.IsConsistent)
	assert.NotEmpty(t, report.Details)
}

func TestBuildConsistencyReport_SinFilas(t *testing.T) {
	report := stock.BuildConsistencyReport(producto(7), nil)
	assert.True(t, report.IsConsistent)
	assert.Equal(t, 7, report.Unsectorized)
}
