package stock

import (
	"fmt"

	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

// ConsistencyReport describe el estado del libro de stock de un producto.
// Los hallazgos se reportan, nunca se corrigen aquí (eso es tarea de compact,
// que solo elimina ruido <= 0).
type ConsistencyReport struct {
	ProductID    string
	TotalStock   int
	SectorSum    int
	Unsectorized int // TotalStock - SectorSum; negativo implica deriva
	NegativeRows []string
	ZeroRows     []string
	IsConsistent bool
	Details      []string
}

// BuildConsistencyReport recalcula la suma por sectores y la compara con el
// stock total registrado. Valores negativos en cualquiera de los dos lados se
// marcan inconsistentes; nunca se recortan en silencio.
func BuildConsistencyReport(product *entity.Product, rows []entity.SectorStock) ConsistencyReport {
	report := ConsistencyReport{ProductID: product.ID, TotalStock: product.TotalStock}
	for _, r := range rows {
		report.SectorSum += r.Quantity
		if r.Quantity < 0 {
			report.NegativeRows = append(report.NegativeRows, r.SectorID)
			report.Details = append(report.Details,
				fmt.Sprintf("sector %s con cantidad negativa %d", r.SectorID, r.Quantity))
		} else if r.Quantity == 0 {
			report.ZeroRows = append(report.ZeroRows, r.SectorID)
			report.Details = append(report.Details,
				fmt.Sprintf("sector %s con fila en cero (debe eliminarse)", r.SectorID))
		}
	}
	report.Unsectorized = report.TotalStock - report.SectorSum
	if product.TotalStock < 0 {
		report.Details = append(report.Details,
			fmt.Sprintf("stock total negativo %d", product.TotalStock))
	}
	if report.Unsectorized < 0 {
		report.Details = append(report.Details,
			fmt.Sprintf("la suma por sectores %d excede el stock total %d", report.SectorSum, report.TotalStock))
	}
	report.IsConsistent = product.TotalStock >= 0 &&
		report.Unsectorized >= 0 &&
		len(report.NegativeRows) == 0 &&
		len(report.ZeroRows) == 0
	return report
}
