package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación del puerto SectorRepository sobre PostgreSQL.
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador de persistencia para sectores.
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

// Create persiste un nuevo sector.
func (r *SectorRepo) Create(sector *entity.Sector) error {
	query := `
		INSERT INTO sectors (id, company_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sector.ID, sector.CompanyID, sector.Name, sector.Description,
		sector.CreatedAt, sector.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sector: %w", err)
	}
	return nil
}

// GetByID obtiene un sector por ID.
func (r *SectorRepo) GetByID(id string) (*entity.Sector, error) {
	query := `SELECT id, company_id, name, description, created_at, updated_at FROM sectors WHERE id = $1`
	var s entity.Sector
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sector: %w", err)
	}
	return &s, nil
}

// Update actualiza nombre y descripción de un sector.
func (r *SectorRepo) Update(sector *entity.Sector) error {
	query := `UPDATE sectors SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sector.ID, sector.Name, sector.Description, sector.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sector: %w", err)
	}
	return nil
}

// ListByCompany lista sectores por empresa con paginación.
func (r *SectorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error) {
	query := `
		SELECT id, company_id, name, description, created_at, updated_at
		FROM sectors WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un sector. Las filas de stock que queden huérfanas las
// recoge el barrido de PruneOrphans.
func (r *SectorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sectors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sector: %w", err)
	}
	return nil
}
