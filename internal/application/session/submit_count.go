package session

import (
	"context"
	"time"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
)

// SubmitCount registra el conteo de uno de los dos contadores para un producto.
// Los registros de A y B son escrituras independientes sobre campos distintos
// del mismo detalle; solo se bloquea la fila del detalle, nunca la sesión
// completa, para que los dos contadores no se estorben.
func (uc *SessionUseCase) SubmitCount(ctx context.Context, companyID, sessionID, productID, callingUserID string, quantity int, formula string) (*entity.CountDetail, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.CountDetail
	err := uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.InventorySessionRepository,
		detailRepo repository.CountDetailRepository,
		_ repository.ProductRepository,
		_ repository.SectorStockRepository,
	) error {
		session, err := sessionRepo.GetByID(sessionID)
		if err != nil {
			return err
		}
		if session == nil || session.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if !session.IsAssigned(callingUserID) {
			return &domain.NotAssignedError{SessionID: sessionID, UserID: callingUserID}
		}
		if session.Estado != entity.SessionEnProgreso && session.Estado != entity.SessionConDiferencias {
			return &domain.InvalidTransitionError{SessionID: sessionID, From: session.Estado, To: entity.SessionEnProgreso}
		}

		detail, err := detailRepo.GetActiveForUpdate(sessionID, productID)
		if err != nil {
			return err
		}
		if detail == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if callingUserID == session.CounterAID {
			detail.CountA = &quantity
			detail.FormulaA = formula
		} else {
			detail.CountB = &quantity
			detail.FormulaB = formula
		}

		if detail.IsComplete() {
			rec := domstock.Reconcile(detail.SystemStock, *detail.CountA, *detail.CountB, detail.UnitPrice)
			detail.DiffBetweenCounts = &rec.DiffBetweenCounts
			detail.FinalQuantity = &rec.FinalQuantity
			detail.DiffVsSystem = &rec.DiffVsSystem
			detail.ValueOfDiff = rec.ValueOfDiff
			if rec.DiffBetweenCounts != 0 {
				detail.Estado = entity.DetailDiferencia
			} else {
				detail.Estado = entity.DetailConciliado
			}
		} else {
			detail.Estado = entity.DetailContado1
		}
		detail.UpdatedAt = now
		if err := detailRepo.Update(detail); err != nil {
			return err
		}

		if err := refreshStats(sessionRepo, detailRepo, session, now); err != nil {
			return err
		}
		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// refreshStats recalcula los contadores agregados de la sesión a partir de los
// detalles vigentes, dentro de la misma transacción del registro.
func refreshStats(sessionRepo repository.InventorySessionRepository, detailRepo repository.CountDetailRepository, session *entity.InventorySession, now time.Time) error {
	details, err := detailRepo.ListActiveBySession(session.ID)
	if err != nil {
		return err
	}
	counted, discrepant := 0, 0
	for _, d := range details {
		if d.IsComplete() {
			counted++
		}
		if d.HasDiscrepancy() {
			discrepant++
		}
	}
	session.TotalProducts = len(details)
	session.CountedProducts = counted
	session.ProductsWithDiscrepancy = discrepant
	if session.TotalProducts > 0 {
		session.PercentComplete = float64(counted) * 100 / float64(session.TotalProducts)
	} else {
		session.PercentComplete = 100
	}
	session.UpdatedAt = now
	return sessionRepo.Update(session)
}
