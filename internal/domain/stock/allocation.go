package stock

import (
	"sort"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

// ReceiptLine es una línea del recibo de asignación: un pool tocado, en orden.
type ReceiptLine struct {
	Pool       string // entity.PoolUnsectorized | entity.PoolSector
	SectorID   string // vacío para el pool sin sectorizar
	Quantity   int    // unidades movidas por esta línea (siempre > 0)
	Resulting  int    // cantidad que queda en el pool tras el movimiento
	RowDeleted bool   // la fila de sector quedó en 0 y debe eliminarse
}

// AllocationReceipt es el recibo ordenado de una asignación (entrada o salida).
type AllocationReceipt struct {
	TransactionID string
	ProductID     string
	Delta         int // negativo salida, positivo entrada
	Reason        string
	Lines         []ReceiptLine
}

// PlanDecrement calcula las líneas de una salida de stock sin mutar nada.
//
// Orden de extracción (parte del contrato, no un detalle de implementación):
//  1. pool sin sectorizar;
//  2. filas de sector en orden ascendente de cantidad (empates por id de
//     sector), de modo que se vacíen primero las tenencias pequeñas y queden
//     menos filas de sector con saldo.
//
// totalStock debe cumplir totalStock == sinSectorizar + Σ(filas). Si quantity
// excede totalStock devuelve InsufficientStockError y ninguna línea.
func PlanDecrement(productID string, totalStock int, rows []entity.SectorStock, quantity int) ([]ReceiptLine, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sectorSum := 0
	for _, r := range rows {
		sectorSum += r.Quantity
	}
	unsectorized := totalStock - sectorSum
	if quantity > totalStock {
		return nil, &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: totalStock}
	}

	remaining := quantity
	var lines []ReceiptLine

	if unsectorized > 0 {
		drawn := min(remaining, unsectorized)
		lines = append(lines, ReceiptLine{
			Pool:      entity.PoolUnsectorized,
			Quantity:  drawn,
			Resulting: unsectorized - drawn,
		})
		remaining -= drawn
	}

	if remaining > 0 {
		ordered := make([]entity.SectorStock, len(rows))
		copy(ordered, rows)
		sort.Slice(ordered, func(i, j int) bool {
			if ordered[i].Quantity != ordered[j].Quantity {
				return ordered[i].Quantity < ordered[j].Quantity
			}
			return ordered[i].SectorID < ordered[j].SectorID
		})
		for _, row := range ordered {
			if remaining == 0 {
				break
			}
			if row.Quantity <= 0 {
				continue
			}
			drawn := min(remaining, row.Quantity)
			resulting := row.Quantity - drawn
			lines = append(lines, ReceiptLine{
				Pool:       entity.PoolSector,
				SectorID:   row.SectorID,
				Quantity:   drawn,
				Resulting:  resulting,
				RowDeleted: resulting <= 0,
			})
			remaining -= drawn
		}
	}
	// remaining == 0 garantizado por el chequeo de suficiencia inicial.
	return lines, nil
}
