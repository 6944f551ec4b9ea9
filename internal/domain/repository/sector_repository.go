package repository

import "github.com/jhoicas/sectorial-api/internal/domain/entity"

// SectorRepository define el puerto de persistencia para Sector (DIP).
type SectorRepository interface {
	Create(sector *entity.Sector) error
	GetByID(id string) (*entity.Sector, error)
	Update(sector *entity.Sector) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error)
	Delete(id string) error
}
