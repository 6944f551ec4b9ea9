package repository

import "github.com/jhoicas/sectorial-api/internal/domain/entity"

// CountDetailRepository define el puerto de persistencia para detalles de conteo.
// Las rondas anteriores se marcan Superseded, nunca se eliminan (auditoría).
type CountDetailRepository interface {
	CreateBatch(details []*entity.CountDetail) error
	// GetActive devuelve el detalle vigente (no superseded, no eliminado) del
	// producto en la sesión, o nil.
	GetActive(sessionID, productID string) (*entity.CountDetail, error)
	// GetActiveForUpdate bloquea la fila del detalle vigente.
	GetActiveForUpdate(sessionID, productID string) (*entity.CountDetail, error)
	Update(detail *entity.CountDetail) error
	ListActiveBySession(sessionID string) ([]*entity.CountDetail, error)
	ListBySession(sessionID string) ([]*entity.CountDetail, error)
	// Supersede marca como reemplazados los detalles indicados.
	Supersede(ids []string) error
}
