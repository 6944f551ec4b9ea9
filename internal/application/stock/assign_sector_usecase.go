package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
	"github.com/jhoicas/sectorial-api/pkg/logger"
)

// AssignSectorUseCase mueve unidades entre el pool sin sectorizar y una fila de
// sector. Es la única vía por la que una fila de sector crece: las entradas del
// motor siempre llegan sin sectorizar. El stock total no cambia en estos
// movimientos; solo se redistribuye entre pools.
type AssignSectorUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	sectorRepo  repository.SectorRepository
	log         *logger.Logger
}

// NewAssignSectorUseCase construye el caso de uso.
func NewAssignSectorUseCase(txRunner TxRunner, productRepo repository.ProductRepository, sectorRepo repository.SectorRepository, log *logger.Logger) *AssignSectorUseCase {
	return &AssignSectorUseCase{txRunner: txRunner, productRepo: productRepo, sectorRepo: sectorRepo, log: log}
}

// AssignToSector mueve quantity unidades del pool sin sectorizar al sector.
// Falla con InsufficientStockError si el remanente sin sectorizar no alcanza.
func (uc *AssignSectorUseCase) AssignToSector(ctx context.Context, companyID, userID, productID, sectorID string, quantity int) (*domstock.AllocationReceipt, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkTenant(companyID, productID, sectorID); err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	var receipt *domstock.AllocationReceipt

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		rows, err := sectorStockRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		sectorSum := 0
		for _, r := range rows {
			sectorSum += r.Quantity
		}
		unsectorized := product.TotalStock - sectorSum
		if quantity > unsectorized {
			return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: unsectorized}
		}

		row, err := sectorStockRepo.Get(productID, sectorID)
		if err != nil {
			return err
		}
		newQty := quantity
		if row != nil {
			newQty += row.Quantity
		}
		if err := sectorStockRepo.Upsert(&entity.SectorStock{ProductID: productID, SectorID: sectorID, Quantity: newQty, UpdatedAt: now}); err != nil {
			return err
		}

		lines := []domstock.ReceiptLine{
			{Pool: entity.PoolUnsectorized, Quantity: quantity, Resulting: unsectorized - quantity},
			{Pool: entity.PoolSector, SectorID: sectorID, Quantity: quantity, Resulting: newQty},
		}
		if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, "sectorización", lines[0], -quantity, now)); err != nil {
			return err
		}
		if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, "sectorización", lines[1], quantity, now)); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(productID, product.TotalStock, sectorID); err != nil {
			return err
		}
		receipt = &domstock.AllocationReceipt{TransactionID: txID, ProductID: productID, Delta: 0, Reason: "sectorización", Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("sector_id", sectorID).Int("cantidad", quantity).Msg("stock sectorizado")
	return receipt, nil
}

// ReturnToUnsectorized devuelve quantity unidades de la fila del sector al pool
// sin sectorizar. La fila se elimina si queda en 0.
func (uc *AssignSectorUseCase) ReturnToUnsectorized(ctx context.Context, companyID, userID, productID, sectorID string, quantity int) (*domstock.AllocationReceipt, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkTenant(companyID, productID, sectorID); err != nil {
		return nil, err
	}

	now := time.Now()
	txID := uuid.New().String()
	var receipt *domstock.AllocationReceipt

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		row, err := sectorStockRepo.Get(productID, sectorID)
		if err != nil {
			return err
		}
		available := 0
		if row != nil {
			available = row.Quantity
		}
		if quantity > available {
			return &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: available}
		}

		resulting := available - quantity
		rowDeleted := resulting <= 0
		if rowDeleted {
			if err := sectorStockRepo.Delete(productID, sectorID); err != nil {
				return err
			}
		} else {
			if err := sectorStockRepo.Upsert(&entity.SectorStock{ProductID: productID, SectorID: sectorID, Quantity: resulting, UpdatedAt: now}); err != nil {
				return err
			}
		}

		rows, err := sectorStockRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		sectorSum := 0
		for _, r := range rows {
			sectorSum += r.Quantity
		}
		lines := []domstock.ReceiptLine{
			{Pool: entity.PoolSector, SectorID: sectorID, Quantity: quantity, Resulting: resulting, RowDeleted: rowDeleted},
			{Pool: entity.PoolUnsectorized, Quantity: quantity, Resulting: product.TotalStock - sectorSum},
		}
		if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, "desectorización", lines[0], -quantity, now)); err != nil {
			return err
		}
		if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, "desectorización", lines[1], quantity, now)); err != nil {
			return err
		}
		receipt = &domstock.AllocationReceipt{TransactionID: txID, ProductID: productID, Delta: 0, Reason: "desectorización", Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("sector_id", sectorID).Int("cantidad", quantity).Msg("stock devuelto al pool sin sectorizar")
	return receipt, nil
}

func (uc *AssignSectorUseCase) checkTenant(companyID, productID, sectorID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	sector, err := uc.sectorRepo.GetByID(sectorID)
	if err != nil {
		return err
	}
	if sector == nil || sector.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}
