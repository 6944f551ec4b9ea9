package session

import (
	"context"

	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Cada transición de la sesión es atómica:
// sesión, detalles y lecturas de stock se resuelven juntos o no se resuelven.
type TxRunner interface {
	RunSession(ctx context.Context, fn func(
		sessionRepo repository.InventorySessionRepository,
		detailRepo repository.CountDetailRepository,
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
	) error) error
}
