package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// SessionResult resume el desenlace de un intento de finalización.
type SessionResult struct {
	SessionID               string
	Estado                  string
	TotalProducts           int
	CountedProducts         int
	ProductsWithDiscrepancy int
	RecountAttempts         int
	Details                 []*entity.CountDetail
}

// FinalizeSession intenta cerrar la ronda de conteo vigente.
//
// Requiere que todo detalle vigente tenga ambos conteos; si faltan, falla con
// IncompleteCountError sin cambiar estado. Con discrepancias pasa (o permanece)
// a CON_DIFERENCIAS: incrementa los reintentos, marca los detalles discrepantes
// como reemplazados y emite filas nuevas para la siguiente ronda — los conteos
// previos nunca se borran. Sin discrepancias cierra en COMPLETADO y congela las
// estadísticas. La fila de la sesión se bloquea y los detalles se releen dentro
// de la misma transacción que decide, para que un registro concurrente no
// cuele un conteo entre la lectura y el cierre.
func (uc *SessionUseCase) FinalizeSession(ctx context.Context, companyID, sessionID, callingUserID string) (*SessionResult, error) {
	var result *SessionResult
	err := uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.InventorySessionRepository,
		detailRepo repository.CountDetailRepository,
		_ repository.ProductRepository,
		_ repository.SectorStockRepository,
	) error {
		session, err := sessionRepo.GetForUpdate(sessionID)
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
			return &domain.InvalidTransitionError{SessionID: sessionID, From: session.Estado, To: entity.SessionCompletado}
		}

		details, err := detailRepo.ListActiveBySession(sessionID)
		if err != nil {
			return err
		}
		missingA, missingB := 0, 0
		for _, d := range details {
			if d.CountA == nil {
				missingA++
			}
			if d.CountB == nil {
				missingB++
			}
		}
		if missingA > 0 || missingB > 0 {
			return &domain.IncompleteCountError{SessionID: sessionID, MissingFromA: missingA, MissingFromB: missingB}
		}

		now := time.Now()
		var discrepant []*entity.CountDetail
		for _, d := range details {
			if d.HasDiscrepancy() {
				discrepant = append(discrepant, d)
			}
		}

		if len(discrepant) > 0 {
			ids := make([]string, 0, len(discrepant))
			nextRound := session.RecountAttempts + 2 // la ronda 1 es el conteo original
			redo := make([]*entity.CountDetail, 0, len(discrepant))
			for _, d := range discrepant {
				ids = append(ids, d.ID)
				redo = append(redo, &entity.CountDetail{
					ID:          uuid.New().String(),
					SessionID:   sessionID,
					ProductID:   d.ProductID,
					Round:       nextRound,
					SystemStock: d.SystemStock,
					UnitPrice:   d.UnitPrice,
					Estado:      entity.DetailPendiente,
					CreatedAt:   now,
					UpdatedAt:   now,
				})
			}
			if err := detailRepo.Supersede(ids); err != nil {
				return err
			}
			if err := detailRepo.CreateBatch(redo); err != nil {
				return err
			}
			session.Estado = entity.SessionConDiferencias
			session.RecountAttempts++
			session.CountedProducts = len(details) - len(discrepant)
			session.ProductsWithDiscrepancy = len(discrepant)
			session.PercentComplete = float64(session.CountedProducts) * 100 / float64(len(details))
			session.UpdatedAt = now
			if err := sessionRepo.Update(session); err != nil {
				return err
			}
			uc.log.Warn().Str("session_id", sessionID).Int("discrepancias", len(discrepant)).
				Int("reintento", session.RecountAttempts).Msg("sesión con diferencias, reconteo forzado")
		} else {
			session.Estado = entity.SessionCompletado
			session.CountedProducts = len(details)
			session.ProductsWithDiscrepancy = 0
			session.PercentComplete = 100
			session.FinishedAt = &now
			session.UpdatedAt = now
			if err := sessionRepo.Update(session); err != nil {
				return err
			}
			uc.log.Info().Str("session_id", sessionID).Int("productos", len(details)).Msg("sesión de inventario completada")
		}

		result = &SessionResult{
			SessionID:               sessionID,
			Estado:                  session.Estado,
			TotalProducts:           session.TotalProducts,
			CountedProducts:         session.CountedProducts,
			ProductsWithDiscrepancy: session.ProductsWithDiscrepancy,
			RecountAttempts:         session.RecountAttempts,
			Details:                 details,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
