package repository

import "github.com/jhoicas/sectorial-api/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para las líneas de
// recibo de asignación (DIP). Solo inserción y consulta: el rastro es inmutable.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
}
