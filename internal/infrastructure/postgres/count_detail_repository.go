package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

var _ repository.CountDetailRepository = (*CountDetailRepo)(nil)

// CountDetailRepo implementación del puerto CountDetailRepository sobre
// PostgreSQL. Los detalles de rondas anteriores se marcan superseded, nunca
// se eliminan.
type CountDetailRepo struct {
	q Querier
}

// NewCountDetailRepository construye el adaptador para detalles de conteo.
func NewCountDetailRepository(q Querier) *CountDetailRepo {
	return &CountDetailRepo{q: q}
}

const detailColumns = `id, session_id, product_id, round, system_stock, unit_price, count_a, count_b, formula_a, formula_b, diff_between_counts, final_quantity, diff_vs_system, value_of_diff, estado, eliminado, superseded, created_at, updated_at`

// CreateBatch persiste los detalles de una ronda de conteo.
func (r *CountDetailRepo) CreateBatch(details []*entity.CountDetail) error {
	query := `
		INSERT INTO count_details (id, session_id, product_id, round, system_stock, unit_price, count_a, count_b, formula_a, formula_b, diff_between_counts, final_quantity, diff_vs_system, value_of_diff, estado, eliminado, superseded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	for _, d := range details {
		_, err := r.q.Exec(context.Background(), query,
			d.ID, d.SessionID, d.ProductID, d.Round, d.SystemStock, d.UnitPrice,
			d.CountA, d.CountB, d.FormulaA, d.FormulaB,
			d.DiffBetweenCounts, d.FinalQuantity, d.DiffVsSystem, d.ValueOfDiff,
			d.Estado, d.Eliminado, d.Superseded, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert count detail: %w", err)
		}
	}
	return nil
}

// GetActive devuelve el detalle vigente del producto en la sesión, o nil.
func (r *CountDetailRepo) GetActive(sessionID, productID string) (*entity.CountDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM count_details
		WHERE session_id = $1 AND product_id = $2 AND NOT eliminado AND NOT superseded`
	return r.scanOne(query, sessionID, productID)
}

// GetActiveForUpdate bloquea la fila del detalle vigente. Solo se bloquea el
// detalle, no la sesión: los registros de A y B sobre productos distintos no
// se estorban entre sí.
func (r *CountDetailRepo) GetActiveForUpdate(sessionID, productID string) (*entity.CountDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM count_details
		WHERE session_id = $1 AND product_id = $2 AND NOT eliminado AND NOT superseded
		FOR UPDATE`
	return r.scanOne(query, sessionID, productID)
}

func (r *CountDetailRepo) scanOne(query string, args ...any) (*entity.CountDetail, error) {
	var d entity.CountDetail
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.SessionID, &d.ProductID, &d.Round, &d.SystemStock, &d.UnitPrice,
		&d.CountA, &d.CountB, &d.FormulaA, &d.FormulaB,
		&d.DiffBetweenCounts, &d.FinalQuantity, &d.DiffVsSystem, &d.ValueOfDiff,
		&d.Estado, &d.Eliminado, &d.Superseded, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count detail: %w", err)
	}
	return &d, nil
}

// Update actualiza un detalle (registro de conteo o conciliación).
func (r *CountDetailRepo) Update(d *entity.CountDetail) error {
	query := `
		UPDATE count_details SET
			count_a = $2, count_b = $3, formula_a = $4, formula_b = $5,
			diff_between_counts = $6, final_quantity = $7, diff_vs_system = $8,
			value_of_diff = $9, estado = $10, eliminado = $11, superseded = $12,
			updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.CountA, d.CountB, d.FormulaA, d.FormulaB,
		d.DiffBetweenCounts, d.FinalQuantity, d.DiffVsSystem,
		d.ValueOfDiff, d.Estado, d.Eliminado, d.Superseded, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update count detail: %w", err)
	}
	return nil
}

// ListActiveBySession lista los detalles vigentes de la sesión (la ronda actual).
func (r *CountDetailRepo) ListActiveBySession(sessionID string) ([]*entity.CountDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM count_details
		WHERE session_id = $1 AND NOT eliminado AND NOT superseded
		ORDER BY product_id ASC`
	return r.list(query, sessionID)
}

// ListBySession lista todos los detalles de la sesión, todas las rondas.
func (r *CountDetailRepo) ListBySession(sessionID string) ([]*entity.CountDetail, error) {
	query := `SELECT ` + detailColumns + ` FROM count_details
		WHERE session_id = $1
		ORDER BY round ASC, product_id ASC`
	return r.list(query, sessionID)
}

func (r *CountDetailRepo) list(query string, args ...any) ([]*entity.CountDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list count details: %w", err)
	}
	defer rows.Close()
	var list []*entity.CountDetail
	for rows.Next() {
		var d entity.CountDetail
		if err := rows.Scan(&d.ID, &d.SessionID, &d.ProductID, &d.Round, &d.SystemStock, &d.UnitPrice,
			&d.CountA, &d.CountB, &d.FormulaA, &d.FormulaB,
			&d.DiffBetweenCounts, &d.FinalQuantity, &d.DiffVsSystem, &d.ValueOfDiff,
			&d.Estado, &d.Eliminado, &d.Superseded, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan count detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Supersede marca como reemplazados los detalles indicados (inicio de reconteo).
func (r *CountDetailRepo) Supersede(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE count_details SET superseded = true, updated_at = now() WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("supersede count details: %w", err)
	}
	return nil
}
