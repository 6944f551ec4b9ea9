package session

import (
	"context"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

// Queries de solo lectura sobre sesiones; todas limitadas por empresa.

// GetSession devuelve la sesión con sus detalles (todas las rondas, para auditoría).
func (uc *SessionUseCase) GetSession(ctx context.Context, companyID, sessionID string) (*entity.InventorySession, []*entity.CountDetail, error) {
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.CompanyID != companyID {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.detailRepo.ListBySession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, details, nil
}

// ListByCompany lista las sesiones de la empresa con paginación.
func (uc *SessionUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.InventorySession, error) {
	return uc.sessionRepo.ListByCompany(companyID, limit, offset)
}

// ListAssignedTo lista las sesiones donde el usuario es uno de los contadores.
func (uc *SessionUseCase) ListAssignedTo(ctx context.Context, companyID, userID string, limit, offset int) ([]*entity.InventorySession, error) {
	all, err := uc.sessionRepo.ListByCounter(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	sessions := make([]*entity.InventorySession, 0, len(all))
	for _, s := range all {
		if s.CompanyID == companyID {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}
