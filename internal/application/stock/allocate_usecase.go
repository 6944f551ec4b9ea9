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

// AllocateUseCase aplica entradas y salidas al libro de stock de un producto de
// forma transaccional, con bloqueo de la fila del producto (SELECT FOR UPDATE)
// para serializar asignaciones concurrentes sobre el mismo libro.
type AllocateUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewAllocateUseCase construye el caso de uso.
func NewAllocateUseCase(txRunner TxRunner, productRepo repository.ProductRepository, log *logger.Logger) *AllocateUseCase {
	return &AllocateUseCase{txRunner: txRunner, productRepo: productRepo, log: log}
}

// Allocate aplica un delta con signo: positivo entra al pool sin sectorizar,
// negativo sale según el orden de extracción del motor.
func (uc *AllocateUseCase) Allocate(ctx context.Context, companyID, userID, productID string, delta int, reason string) (*domstock.AllocationReceipt, error) {
	switch {
	case delta > 0:
		return uc.Increment(ctx, companyID, userID, productID, delta, reason)
	case delta < 0:
		return uc.Decrement(ctx, companyID, userID, productID, -delta, reason)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// Decrement extrae quantity unidades: primero del pool sin sectorizar, luego de
// los sectores en orden ascendente de cantidad. Falla con InsufficientStockError
// sin mutar nada si quantity excede el disponible total.
func (uc *AllocateUseCase) Decrement(ctx context.Context, companyID, userID, productID string, quantity int, reason string) (*domstock.AllocationReceipt, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkTenant(companyID, productID); err != nil {
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
		// Bloquea la fila del producto: el chequeo de suficiencia y la
		// aplicación del plan ocurren bajo el mismo lock.
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
		lines, err := domstock.PlanDecrement(productID, product.TotalStock, rows, quantity)
		if err != nil {
			return err
		}

		total := product.TotalStock
		for _, line := range lines {
			total -= line.Quantity
			if line.Pool == entity.PoolSector {
				if line.RowDeleted {
					if err := sectorStockRepo.Delete(productID, line.SectorID); err != nil {
						return err
					}
				} else {
					row := &entity.SectorStock{ProductID: productID, SectorID: line.SectorID, Quantity: line.Resulting, UpdatedAt: now}
					if err := sectorStockRepo.Upsert(row); err != nil {
						return err
					}
				}
			}
			if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, reason, line, -line.Quantity, now)); err != nil {
				return err
			}
		}

		// Pasada de compactación antes de cerrar la transacción.
		if _, err := sectorStockRepo.DeleteZeroRows(productID); err != nil {
			return err
		}
		sectorTag := product.SectorTag
		if total <= 0 {
			sectorTag = ""
		}
		if err := productRepo.UpdateStock(productID, total, sectorTag); err != nil {
			return err
		}
		receipt = &domstock.AllocationReceipt{TransactionID: txID, ProductID: productID, Delta: -quantity, Reason: reason, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Int("delta", -quantity).Str("tx_id", txID).Msg("salida de stock aplicada")
	return receipt, nil
}

// Increment entra quantity unidades, siempre al pool sin sectorizar: el stock
// nuevo llega sin ubicación física conocida y debe sectorizarse después con una
// asignación de sector explícita, nunca asumirse.
func (uc *AllocateUseCase) Increment(ctx context.Context, companyID, userID, productID string, quantity int, note string) (*domstock.AllocationReceipt, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkTenant(companyID, productID); err != nil {
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
		total := product.TotalStock + quantity
		line := domstock.ReceiptLine{Pool: entity.PoolUnsectorized, Quantity: quantity, Resulting: total - sectorSum}
		if err := movementRepo.Create(receiptLineMovement(txID, companyID, productID, userID, note, line, quantity, now)); err != nil {
			return err
		}
		if _, err := sectorStockRepo.DeleteZeroRows(productID); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(productID, total, product.SectorTag); err != nil {
			return err
		}
		receipt = &domstock.AllocationReceipt{TransactionID: txID, ProductID: productID, Delta: quantity, Reason: note, Lines: []domstock.ReceiptLine{line}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Int("delta", quantity).Str("tx_id", txID).Msg("entrada de stock aplicada")
	return receipt, nil
}

// checkTenant valida existencia y pertenencia del producto a la empresa.
// Acceso cruzado entre tenants responde ErrNotFound, no filtra datos.
func (uc *AllocateUseCase) checkTenant(companyID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}

func receiptLineMovement(txID, companyID, productID, userID, reason string, line domstock.ReceiptLine, signedQty int, now time.Time) *entity.StockMovement {
	var sectorID *string
	if line.Pool == entity.PoolSector {
		id := line.SectorID
		sectorID = &id
	}
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		CompanyID:     companyID,
		ProductID:     productID,
		SectorID:      sectorID,
		Pool:          line.Pool,
		Quantity:      signedQty,
		Resulting:     line.Resulting,
		RowDeleted:    line.RowDeleted,
		Reason:        reason,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
}
