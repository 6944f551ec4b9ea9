package stock

import (
	"context"

	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
	"github.com/jhoicas/sectorial-api/pkg/logger"
)

// ConsistencyUseCase verifica y compacta el libro de stock de un producto.
// Verify solo reporta; Compact elimina exclusivamente ruido <= 0, nunca
// inventa cantidades.
type ConsistencyUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	sectorStockRepo repository.SectorStockRepository
	log             *logger.Logger
}

// NewConsistencyUseCase construye el caso de uso.
func NewConsistencyUseCase(txRunner TxRunner, productRepo repository.ProductRepository, sectorStockRepo repository.SectorStockRepository, log *logger.Logger) *ConsistencyUseCase {
	return &ConsistencyUseCase{txRunner: txRunner, productRepo: productRepo, sectorStockRepo: sectorStockRepo, log: log}
}

// Verify recalcula la suma por sectores y la compara con el stock total
// registrado. Los hallazgos se reportan al caller, no se corrigen.
func (uc *ConsistencyUseCase) Verify(ctx context.Context, companyID, productID string) (*domstock.ConsistencyReport, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.sectorStockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	report := domstock.BuildConsistencyReport(product, rows)
	if !report.IsConsistent {
		uc.log.Warn().Str("product_id", productID).Strs("detalles", report.Details).Msg("libro de stock inconsistente")
	}
	return &report, nil
}

// Compact elimina las filas de sector con cantidad <= 0 del producto y limpia
// la etiqueta de sector si el stock total quedó en 0. Idempotente: una segunda
// pasada no cambia nada.
func (uc *ConsistencyUseCase) Compact(ctx context.Context, companyID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
		_ repository.StockMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		deleted, err := sectorStockRepo.DeleteZeroRows(productID)
		if err != nil {
			return err
		}
		if p.TotalStock <= 0 && p.SectorTag != "" {
			if err := productRepo.UpdateStock(productID, p.TotalStock, ""); err != nil {
				return err
			}
		}
		if deleted > 0 {
			uc.log.Info().Str("product_id", productID).Int64("filas", deleted).Msg("filas de sector en cero eliminadas")
		}
		return nil
	})
}

// PruneOrphans elimina en lote las filas producto+sector cuyo producto o sector
// ya no existe (limpieza tras borrados masivos en otros módulos). Devuelve el
// número de filas eliminadas. La deriva de stock que esto destape se detecta
// con Verify; nunca se corrige adivinando.
func (uc *ConsistencyUseCase) PruneOrphans(ctx context.Context) (int64, error) {
	var pruned int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		sectorStockRepo repository.SectorStockRepository,
		_ repository.StockMovementRepository,
	) error {
		n, err := sectorStockRepo.DeleteOrphans()
		if err != nil {
			return err
		}
		pruned = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if pruned > 0 {
		uc.log.Info().Int64("filas", pruned).Msg("filas huérfanas de sector eliminadas")
	}
	return pruned, nil
}
