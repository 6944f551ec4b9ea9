package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sectorial-api/internal/application/dto"
	"github.com/jhoicas/sectorial-api/internal/domain"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
)

// SectorUseCase casos de uso CRUD para sectores físicos de almacenamiento.
type SectorUseCase struct {
	repo repository.SectorRepository
}

// NewSectorUseCase construye el caso de uso.
func NewSectorUseCase(repo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{repo: repo}
}

// Create crea un nuevo sector.
func (uc *SectorUseCase) Create(companyID string, in dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	now := time.Now()
	sector := &entity.Sector{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(sector); err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// GetByID obtiene un sector por ID, limitado a la empresa del solicitante.
func (uc *SectorUseCase) GetByID(companyID, id string) (*dto.SectorResponse, error) {
	sector, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sector == nil || sector.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toSectorResponse(sector), nil
}

// Update actualiza nombre o descripción de un sector.
func (uc *SectorUseCase) Update(companyID, id string, in dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	sector, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sector == nil || sector.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		sector.Name = *in.Name
	}
	if in.Description != nil {
		sector.Description = *in.Description
	}
	sector.UpdatedAt = time.Now()
	if err := uc.repo.Update(sector); err != nil {
		return nil, err
	}
	return toSectorResponse(sector), nil
}

// List lista sectores por empresa con paginación.
func (uc *SectorUseCase) List(companyID string, limit, offset int) (*dto.SectorListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectorResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSectorResponse(s))
	}
	return &dto.SectorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un sector por ID. Las filas de stock huérfanas las recoge el
// barrido de integridad.
func (uc *SectorUseCase) Delete(companyID, id string) error {
	sector, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sector == nil || sector.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSectorResponse(s *entity.Sector) *dto.SectorResponse {
	if s == nil {
		return nil
	}
	return &dto.SectorResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
