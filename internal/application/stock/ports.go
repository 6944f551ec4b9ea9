package stock

import (
	"context"

	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada asignación sea atómica:
// o se aplican todas las mutaciones de filas, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
