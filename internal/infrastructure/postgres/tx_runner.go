package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/sectorial-api/internal/application/session"
	"github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and session.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ session.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del motor de asignación y hace
// Commit o Rollback. Toda asignación de stock pasa por aquí.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	sectorStockRepo repository.SectorStockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	sectorStockRepo := NewSectorStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(productRepo, sectorStockRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSession inicia una transacción con los repos del ciclo de conteo
// (sesión, detalles y lecturas de stock para congelar el alcance).
func (r *TxRunner) RunSession(ctx context.Context, fn func(
	sessionRepo repository.InventorySessionRepository,
	detailRepo repository.CountDetailRepository,
	productRepo repository.ProductRepository,
	sectorStockRepo repository.SectorStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sessionRepo := NewInventorySessionRepository(tx)
	detailRepo := NewCountDetailRepository(tx)
	productRepo := NewProductRepository(tx)
	sectorStockRepo := NewSectorStockRepository(tx)

	if err := fn(sessionRepo, detailRepo, productRepo, sectorStockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
