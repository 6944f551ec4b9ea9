package stock

import (
	"context"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el libro de stock: filas
// por sector y rastro de movimientos. Todas limitadas por empresa.
type StockQueryUseCase struct {
	productRepo     repository.ProductRepository
	sectorRepo      repository.SectorRepository
	sectorStockRepo repository.SectorStockRepository
	movementRepo    repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso con repos atados al pool.
func NewStockQueryUseCase(
	productRepo repository.ProductRepository,
	sectorRepo repository.SectorRepository,
	sectorStockRepo repository.SectorStockRepository,
	movementRepo repository.StockMovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		productRepo:     productRepo,
		sectorRepo:      sectorRepo,
		sectorStockRepo: sectorStockRepo,
		movementRepo:    movementRepo,
	}
}

// ListProductSectors devuelve las filas de sector de un producto, en el orden
// de extracción del motor (cantidad ascendente).
func (uc *StockQueryUseCase) ListProductSectors(ctx context.Context, companyID, productID string) ([]entity.SectorStock, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.sectorStockRepo.ListByProduct(productID)
}

// ListSectorStock devuelve las filas de producto presentes en un sector.
func (uc *StockQueryUseCase) ListSectorStock(ctx context.Context, companyID, sectorID string) ([]entity.SectorStock, error) {
	sector, err := uc.sectorRepo.GetByID(sectorID)
	if err != nil {
		return nil, err
	}
	if sector == nil || sector.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.sectorStockRepo.ListBySector(sectorID)
}

// ListMovements devuelve el rastro de asignaciones de un producto, más
// recientes primero.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}

// GetReceipt devuelve las líneas persistidas de un recibo de asignación.
func (uc *StockQueryUseCase) GetReceipt(ctx context.Context, companyID, transactionID string) ([]*entity.StockMovement, error) {
	movements, err := uc.movementRepo.ListByTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 || movements[0].CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return movements, nil
}
