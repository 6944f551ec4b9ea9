package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

var _ repository.InventorySessionRepository = (*InventorySessionRepo)(nil)

// InventorySessionRepo implementación del puerto InventorySessionRepository
// sobre PostgreSQL.
type InventorySessionRepo struct {
	q Querier
}

// NewInventorySessionRepository construye el adaptador para sesiones de conteo.
func NewInventorySessionRepository(q Querier) *InventorySessionRepo {
	return &InventorySessionRepo{q: q}
}

const sessionColumns = `id, company_id, sector_id, estado, counter_a_id, counter_b_id, total_products, counted_products, products_with_discrepancy, recount_attempts, percent_complete, created_by, started_at, finished_at, created_at, updated_at`

// Create persiste una nueva sesión.
func (r *InventorySessionRepo) Create(s *entity.InventorySession) error {
	query := `
		INSERT INTO inventory_sessions (id, company_id, sector_id, estado, counter_a_id, counter_b_id, total_products, counted_products, products_with_discrepancy, recount_attempts, percent_complete, created_by, started_at, finished_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CompanyID, s.SectorID, s.Estado, s.CounterAID, s.CounterBID,
		s.TotalProducts, s.CountedProducts, s.ProductsWithDiscrepancy,
		s.RecountAttempts, s.PercentComplete, s.CreatedBy,
		s.StartedAt, s.FinishedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID, o nil si no existe.
func (r *InventorySessionRepo) GetByID(id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate bloquea la fila de la sesión. Serializa finalize contra
// registros de conteo concurrentes sobre la misma sesión.
func (r *InventorySessionRepo) GetForUpdate(id string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// FindActiveBySector devuelve la sesión no terminal del sector, o nil.
// Máximo una por sector: la unicidad se valida aquí antes de crear.
func (r *InventorySessionRepo) FindActiveBySector(companyID, sectorID string) (*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions
		WHERE company_id = $1 AND sector_id = $2 AND estado <> $3
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(query, companyID, sectorID, entity.SessionCompletado)
}

func (r *InventorySessionRepo) scanOne(query string, args ...any) (*entity.InventorySession, error) {
	var s entity.InventorySession
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.CompanyID, &s.SectorID, &s.Estado, &s.CounterAID, &s.CounterBID,
		&s.TotalProducts, &s.CountedProducts, &s.ProductsWithDiscrepancy,
		&s.RecountAttempts, &s.PercentComplete, &s.CreatedBy,
		&s.StartedAt, &s.FinishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory session: %w", err)
	}
	return &s, nil
}

// Update actualiza estado, contadores y estadísticas de una sesión.
func (r *InventorySessionRepo) Update(s *entity.InventorySession) error {
	query := `
		UPDATE inventory_sessions SET
			estado = $2, counter_a_id = $3, counter_b_id = $4,
			total_products = $5, counted_products = $6, products_with_discrepancy = $7,
			recount_attempts = $8, percent_complete = $9,
			started_at = $10, finished_at = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Estado, s.CounterAID, s.CounterBID,
		s.TotalProducts, s.CountedProducts, s.ProductsWithDiscrepancy,
		s.RecountAttempts, s.PercentComplete,
		s.StartedAt, s.FinishedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory session: %w", err)
	}
	return nil
}

// ListByCompany lista sesiones por empresa, más recientes primero.
func (r *InventorySessionRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListByCounter lista sesiones donde el usuario es uno de los contadores.
func (r *InventorySessionRepo) ListByCounter(userID string, limit, offset int) ([]*entity.InventorySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM inventory_sessions
		WHERE counter_a_id = $1 OR counter_b_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

func (r *InventorySessionRepo) list(query string, args ...any) ([]*entity.InventorySession, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventorySession
	for rows.Next() {
		var s entity.InventorySession
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.SectorID, &s.Estado, &s.CounterAID, &s.CounterBID,
			&s.TotalProducts, &s.CountedProducts, &s.ProductsWithDiscrepancy,
			&s.RecountAttempts, &s.PercentComplete, &s.CreatedBy,
			&s.StartedAt, &s.FinishedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
