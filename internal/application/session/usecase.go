package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	"github.com/jhoicas/sectorial-api/pkg/logger"
)

// SessionUseCase orquesta el ciclo de doble conteo ciego de un sector:
// creación, asignación de contadores, inicio, registro de conteos,
// finalización con reconteos forzados y aplicación explícita de ajustes.
type SessionUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.InventorySessionRepository
	detailRepo  repository.CountDetailRepository
	sectorRepo  repository.SectorRepository
	userRepo    repository.UserRepository
	log         *logger.Logger
}

// NewSessionUseCase construye el caso de uso. sessionRepo y detailRepo van
// atados al pool y solo se usan para consultas; las mutaciones pasan por txRunner.
func NewSessionUseCase(
	txRunner TxRunner,
	sessionRepo repository.InventorySessionRepository,
	detailRepo repository.CountDetailRepository,
	sectorRepo repository.SectorRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		detailRepo:  detailRepo,
		sectorRepo:  sectorRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// CreateSession crea una sesión PENDIENTE para el sector. Solo un admin puede
// crearla, y solo si el sector no tiene otra sesión no terminal. El alcance
// queda congelado aquí: un detalle por producto presente en el sector, con
// instantáneas de stock de sistema y precio unitario.
func (uc *SessionUseCase) CreateSession(ctx context.Context, companyID, sectorID, adminUserID string) (string, error) {
	sector, err := uc.sectorRepo.GetByID(sectorID)
	if err != nil {
		return "", err
	}
	if sector == nil || sector.CompanyID != companyID {
		return "", domain.ErrNotFound
	}
	if err := uc.requireRole(companyID, adminUserID, entity.RoleAdmin); err != nil {
		return "", err
	}

	now := time.Now()
	sessionID := uuid.New().String()

	err = uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.InventorySessionRepository,
		detailRepo repository.CountDetailRepository,
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
	) error {
		active, err := sessionRepo.FindActiveBySector(companyID, sectorID)
		if err != nil {
			return err
		}
		if active != nil {
			return &domain.SessionAlreadyActiveError{SectorID: sectorID, SessionID: active.ID}
		}

		rows, err := sectorStockRepo.ListBySector(sectorID)
		if err != nil {
			return err
		}
		details := make([]*entity.CountDetail, 0, len(rows))
		for _, row := range rows {
			product, err := productRepo.GetByID(row.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// Fila huérfana: el producto fue borrado en otro módulo. La
				// excluye del alcance; PruneOrphans la limpia en lote.
				continue
			}
			details = append(details, &entity.CountDetail{
				ID:          uuid.New().String(),
				SessionID:   sessionID,
				ProductID:   row.ProductID,
				Round:       1,
				SystemStock: row.Quantity,
				UnitPrice:   product.Price,
				Estado:      entity.DetailPendiente,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		session := &entity.InventorySession{
			ID:            sessionID,
			CompanyID:     companyID,
			SectorID:      sectorID,
			Estado:        entity.SessionPendiente,
			TotalProducts: len(details),
			CreatedBy:     adminUserID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := sessionRepo.Create(session); err != nil {
			return err
		}
		return detailRepo.CreateBatch(details)
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("session_id", sessionID).Str("sector_id", sectorID).Msg("sesión de inventario creada")
	return sessionID, nil
}

// AssignCounters asigna los dos contadores ciegos de la sesión. Ambos deben
// ser usuarios distintos de la empresa con rol contador.
func (uc *SessionUseCase) AssignCounters(ctx context.Context, companyID, sessionID, userAID, userBID string) error {
	if userAID == "" || userBID == "" || userAID == userBID {
		return domain.ErrInvalidInput
	}
	if err := uc.requireRole(companyID, userAID, entity.RoleContador); err != nil {
		return err
	}
	if err := uc.requireRole(companyID, userBID, entity.RoleContador); err != nil {
		return err
	}
	return uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.InventorySessionRepository,
		_ repository.CountDetailRepository,
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
		if session.Estado != entity.SessionPendiente {
			return &domain.InvalidTransitionError{SessionID: sessionID, From: session.Estado, To: entity.SessionPendiente}
		}
		session.CounterAID = userAID
		session.CounterBID = userBID
		session.UpdatedAt = time.Now()
		return sessionRepo.Update(session)
	})
}

// StartSession inicia el conteo: PENDIENTE -> EN_PROGRESO. Solo uno de los dos
// contadores asignados puede iniciarlo.
func (uc *SessionUseCase) StartSession(ctx context.Context, companyID, sessionID, callingUserID string) error {
	return uc.txRunner.RunSession(ctx, func(
		sessionRepo repository.InventorySessionRepository,
		_ repository.CountDetailRepository,
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
		if session.Estado != entity.SessionPendiente {
			return &domain.InvalidTransitionError{SessionID: sessionID, From: session.Estado, To: entity.SessionEnProgreso}
		}
		now := time.Now()
		session.Estado = entity.SessionEnProgreso
		session.StartedAt = &now
		session.UpdatedAt = now
		if err := sessionRepo.Update(session); err != nil {
			return err
		}
		uc.log.Info().Str("session_id", sessionID).Str("user_id", callingUserID).Msg("conteo iniciado")
		return nil
	})
}

// requireRole valida que el usuario exista en la empresa y tenga el rol pedido.
func (uc *SessionUseCase) requireRole(companyID, userID, role string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	if user.Role != role {
		return &domain.RoleError{UserID: userID, Role: user.Role, Required: role}
	}
	return nil
}
