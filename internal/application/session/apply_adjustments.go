package session

import (
	"context"
	"fmt"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
)

// Allocator es el contrato mínimo que la sesión necesita del motor de
// asignación. Lo implementa *stock.AllocateUseCase; la interfaz evita acoplar
// los dos paquetes de aplicación.
type Allocator interface {
	Allocate(ctx context.Context, companyID, userID, productID string, delta int, reason string) (*domstock.AllocationReceipt, error)
}

// ApplyAdjustments empuja al libro vivo las diferencias contra el sistema de
// una sesión COMPLETADO. Nunca ocurre automáticamente al finalizar: toda
// mutación del libro es explícita y con recibo, así que la corrección es una
// acción aparte que dispara un admin. Cada ajuste pasa por el motor de
// asignación y deja su propio rastro de movimientos.
func (uc *SessionUseCase) ApplyAdjustments(ctx context.Context, companyID, sessionID, adminUserID string, allocator Allocator) ([]*domstock.AllocationReceipt, error) {
	if err := uc.requireRole(companyID, adminUserID, entity.RoleAdmin); err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if session.Estado != entity.SessionCompletado {
		return nil, &domain.InvalidTransitionError{SessionID: sessionID, From: session.Estado, To: entity.SessionCompletado}
	}
	details, err := uc.detailRepo.ListActiveBySession(sessionID)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("ajuste por sesión de inventario %s (sector %s)", sessionID, session.SectorID)
	var receipts []*domstock.AllocationReceipt
	for _, d := range details {
		if d.Estado != entity.DetailConciliado || d.DiffVsSystem == nil || *d.DiffVsSystem == 0 {
			continue
		}
		receipt, err := allocator.Allocate(ctx, companyID, adminUserID, d.ProductID, *d.DiffVsSystem, reason)
		if err != nil {
			return receipts, err
		}
		receipts = append(receipts, receipt)
	}
	uc.log.Info().Str("session_id", sessionID).Int("ajustes", len(receipts)).Msg("ajustes de sesión aplicados al libro")
	return receipts, nil
}
