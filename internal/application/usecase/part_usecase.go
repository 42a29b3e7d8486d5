package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para partes y versiones. Es un almacén plano:
// su única relación con el árbol es que cada versión referencia una categoría
// existente, lo que a su vez bloquea el borrado de esa categoría.
type PartUseCase struct {
	partRepo repository.PartRepository
	catRepo  repository.CategoryRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(partRepo repository.PartRepository, catRepo repository.CategoryRepository) *PartUseCase {
	return &PartUseCase{partRepo: partRepo, catRepo: catRepo}
}

// Create crea una parte. PartNumber es único en el catálogo.
func (uc *PartUseCase) Create(createdBy string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.PartNumber == "" || in.Name == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.partRepo.GetByPartNumber(in.PartNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	part := &entity.Part{
		ID:          uuid.New().String(),
		PartNumber:  in.PartNumber,
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.partRepo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene una parte. Devuelve (nil, nil) si no existe.
func (uc *PartUseCase) GetByID(id string) (*dto.PartResponse, error) {
	part, err := uc.partRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toPartResponse(part), nil
}

// List lista partes con paginación.
func (uc *PartUseCase) List(limit, offset int) (*dto.PartListResponse, error) {
	list, err := uc.partRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CreateVersion crea la siguiente revisión de la parte, asociada a una
// categoría existente.
func (uc *PartUseCase) CreateVersion(createdBy, partID string, in dto.CreatePartVersionRequest) (*dto.PartVersionResponse, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.CategoryID == "" {
		return nil, domain.ErrValidation
	}
	category, err := uc.catRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrValidation
	}
	status := in.Status
	if status == "" {
		status = entity.VersionStatusDraft
	}
	previous, err := uc.partRepo.ListVersions(partID)
	if err != nil {
		return nil, err
	}
	version := &entity.PartVersion{
		ID:         uuid.New().String(),
		PartID:     partID,
		Revision:   len(previous) + 1,
		CategoryID: in.CategoryID,
		Status:     status,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now(),
	}
	if err := uc.partRepo.CreateVersion(version); err != nil {
		return nil, err
	}
	return toPartVersionResponse(version), nil
}

// ListVersions lista las revisiones de una parte.
func (uc *PartUseCase) ListVersions(partID string) (*dto.PartVersionListResponse, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.partRepo.ListVersions(partID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartVersionResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toPartVersionResponse(v))
	}
	return &dto.PartVersionListResponse{Items: items}, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:          p.ID,
		PartNumber:  p.PartNumber,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPartVersionResponse(v *entity.PartVersion) *dto.PartVersionResponse {
	if v == nil {
		return nil
	}
	return &dto.PartVersionResponse{
		ID:         v.ID,
		PartID:     v.PartID,
		Revision:   v.Revision,
		CategoryID: v.CategoryID,
		Status:     v.Status,
		CreatedBy:  v.CreatedBy,
		CreatedAt:  v.CreatedAt,
	}
}
