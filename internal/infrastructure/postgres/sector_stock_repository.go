package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

var _ repository.SectorStockRepository = (*SectorStockRepo)(nil)

// SectorStockRepo implementación del puerto SectorStockRepository sobre
// PostgreSQL. Clave primaria compuesta (product_id, sector_id).
type SectorStockRepo struct {
	q Querier
}

// NewSectorStockRepository construye el adaptador para filas producto+sector.
func NewSectorStockRepository(q Querier) *SectorStockRepo {
	return &SectorStockRepo{q: q}
}

// Get obtiene la fila de un producto en un sector, o nil si no existe.
func (r *SectorStockRepo) Get(productID, sectorID string) (*entity.SectorStock, error) {
	query := `SELECT product_id, sector_id, quantity, updated_at FROM sector_stocks WHERE product_id = $1 AND sector_id = $2`
	var row entity.SectorStock
	err := r.q.QueryRow(context.Background(), query, productID, sectorID).Scan(
		&row.ProductID, &row.SectorID, &row.Quantity, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector stock: %w", err)
	}
	return &row, nil
}

// ListByProduct lista las filas de sector de un producto.
// Ordena por cantidad ascendente (desempate por sector) porque ese es el
// orden de extracción del motor de asignación.
func (r *SectorStockRepo) ListByProduct(productID string) ([]entity.SectorStock, error) {
	query := `
		SELECT product_id, sector_id, quantity, updated_at
		FROM sector_stocks WHERE product_id = $1
		ORDER BY quantity ASC, sector_id ASC`
	return r.list(query, productID)
}

// ListBySector lista las filas de un sector (alcance de una sesión de conteo).
func (r *SectorStockRepo) ListBySector(sectorID string) ([]entity.SectorStock, error) {
	query := `
		SELECT product_id, sector_id, quantity, updated_at
		FROM sector_stocks WHERE sector_id = $1
		ORDER BY product_id ASC`
	return r.list(query, sectorID)
}

func (r *SectorStockRepo) list(query string, arg any) ([]entity.SectorStock, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list sector stocks: %w", err)
	}
	defer rows.Close()
	var list []entity.SectorStock
	for rows.Next() {
		var row entity.SectorStock
		if err := rows.Scan(&row.ProductID, &row.SectorID, &row.Quantity, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sector stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Upsert crea o actualiza la fila producto+sector.
func (r *SectorStockRepo) Upsert(row *entity.SectorStock) error {
	query := `
		INSERT INTO sector_stocks (product_id, sector_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, sector_id) DO UPDATE SET quantity = $3, updated_at = $4`
	_, err := r.q.Exec(context.Background(), query,
		row.ProductID, row.SectorID, row.Quantity, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert sector stock: %w", err)
	}
	return nil
}

// Delete elimina la fila producto+sector.
func (r *SectorStockRepo) Delete(productID, sectorID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sector_stocks WHERE product_id = $1 AND sector_id = $2`,
		productID, sectorID,
	)
	if err != nil {
		return fmt.Errorf("delete sector stock: %w", err)
	}
	return nil
}

// DeleteZeroRows elimina las filas con cantidad <= 0 del producto.
// Idempotente: una segunda pasada no encuentra nada que borrar.
func (r *SectorStockRepo) DeleteZeroRows(productID string) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM sector_stocks WHERE product_id = $1 AND quantity <= 0`,
		productID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete zero sector stocks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOrphans elimina filas cuyo producto o sector ya no existe.
func (r *SectorStockRepo) DeleteOrphans() (int64, error) {
	query := `
		DELETE FROM sector_stocks
		WHERE product_id NOT IN (SELECT id FROM products)
		   OR sector_id NOT IN (SELECT id FROM sectors)`
	tag, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return 0, fmt.Errorf("delete orphan sector stocks: %w", err)
	}
	return tag.RowsAffected(), nil
}
