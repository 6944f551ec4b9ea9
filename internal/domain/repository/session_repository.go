package repository

import "github.com/jhoicas/sectorial-api/internal/domain/entity"

// InventorySessionRepository define el puerto de persistencia para sesiones de conteo.
type InventorySessionRepository interface {
	Create(session *entity.InventorySession) error
	GetByID(id string) (*entity.InventorySession, error)
	// GetForUpdate bloquea la fila de la sesión para serializar finalize
	// contra registros de conteo concurrentes.
	GetForUpdate(id string) (*entity.InventorySession, error)
	// FindActiveBySector devuelve la sesión no terminal del sector, o nil.
	FindActiveBySector(companyID, sectorID string) (*entity.InventorySession, error)
	Update(session *entity.InventorySession) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventorySession, error)
	ListByCounter(userID string, limit, offset int) ([]*entity.InventorySession, error)
}
