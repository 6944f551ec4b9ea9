package repository

import "github.com/jhoicas/sectorial-api/internal/domain/entity"

// SectorStockRepository define el puerto para las filas producto+sector.
// Usado dentro de transacciones para garantizar consistencia del libro.
type SectorStockRepository interface {
	Get(productID, sectorID string) (*entity.SectorStock, error)
	ListByProduct(productID string) ([]entity.SectorStock, error)
	ListBySector(sectorID string) ([]entity.SectorStock, error)
	Upsert(row *entity.SectorStock) error
	Delete(productID, sectorID string) error
	// DeleteZeroRows elimina filas con cantidad <= 0 del producto (compactación).
	DeleteZeroRows(productID string) (int64, error)
	// DeleteOrphans elimina filas cuyo producto o sector ya no existe
	// (barrido de integridad referencial tras borrados masivos).
	DeleteOrphans() (int64, error)
}
