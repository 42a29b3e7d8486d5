package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// CategoryUseCase casos de uso de escritura sobre el árbol de categorías:
// alta, actualización (rename con cascada), borrado y campos personalizados.
// Toda mutación estructural corre dentro de una transacción vía TxRunner.
type CategoryUseCase struct {
	txRunner TxRunner
	catRepo  repository.CategoryRepository
	cfRepo   repository.CustomFieldRepository
	maxDepth int
}

// NewCategoryUseCase construye el caso de uso. maxDepth acota la profundidad
// del árbol (límite de latencia para reescrituras de subárbol).
func NewCategoryUseCase(txRunner TxRunner, catRepo repository.CategoryRepository, cfRepo repository.CustomFieldRepository, maxDepth int) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, catRepo: catRepo, cfRepo: cfRepo, maxDepth: maxDepth}
}

// Create crea una categoría. El path se deriva del padre + etiqueta
// sanitizada en el momento del alta; nunca lo fija el caller. El nodo y sus
// campos personalizados se insertan en la misma transacción: si cualquiera
// falla, no queda nada escrito.
func (uc *CategoryUseCase) Create(ctx context.Context, createdBy string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	label := hierarchy.Sanitize(name)
	if label == "" || label == "_" {
		return nil, domain.ErrValidation
	}

	parentPath := ""
	if in.ParentID != "" {
		parent, err := uc.catRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrInvalidParent
		}
		parentPath = parent.Path
	}
	path := hierarchy.Join(parentPath, label)
	if hierarchy.Depth(path) > uc.maxDepth {
		return nil, domain.ErrValidation
	}

	// Chequeo proactivo de colisión entre hermanos; el constraint único
	// (parent_id, label) respalda ante carreras.
	sibling, err := uc.catRepo.GetChildByLabel(in.ParentID, label)
	if err != nil {
		return nil, err
	}
	if sibling != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    in.ParentID,
		Name:        name,
		Label:       label,
		Path:        path,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedBy:   createdBy,
		UpdatedAt:   now,
	}
	fields := customFieldsFromInput(category.ID, in.CustomFields)

	err = uc.txRunner.Run(ctx, func(catRepo repository.CategoryRepository, cfRepo repository.CustomFieldRepository, _ repository.PartRepository) error {
		if err := catRepo.Create(category); err != nil {
			return err
		}
		if len(fields) > 0 {
			return cfRepo.ReplaceForCategory(category.ID, fields)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update actualiza nombre, descripción o visibilidad. Un cambio de nombre se
// trata como "mover al mismo padre con nueva etiqueta": el path del nodo y el
// de TODOS sus descendientes se reescriben en la misma transacción, con la
// misma primitiva que usa el motor de movimiento.
func (uc *CategoryUseCase) Update(ctx context.Context, id, updatedBy string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNotFound
	}

	rename := false
	newLabel := node.Label
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation
		}
		newLabel = hierarchy.Sanitize(name)
		if newLabel == "" || newLabel == "_" {
			return nil, domain.ErrValidation
		}
		rename = newLabel != node.Label
		node.Name = name
	}
	if in.Description != nil {
		node.Description = *in.Description
	}
	if in.IsPublic != nil {
		node.IsPublic = *in.IsPublic
	}
	node.UpdatedBy = updatedBy
	node.UpdatedAt = time.Now()

	if !rename {
		if err := uc.catRepo.Update(node); err != nil {
			return nil, err
		}
		return toCategoryResponse(node), nil
	}

	// Rename: misma reescritura atómica de subárbol que un move.
	err = uc.txRunner.Run(ctx, func(catRepo repository.CategoryRepository, _ repository.CustomFieldRepository, _ repository.PartRepository) error {
		locked, err := catRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		sibling, err := catRepo.GetChildByLabel(locked.ParentID, newLabel)
		if err != nil {
			return err
		}
		if sibling != nil && sibling.ID != locked.ID {
			return domain.ErrDuplicateName
		}
		oldPath := locked.Path
		newPath := hierarchy.Join(hierarchy.ParentPath(oldPath), newLabel)

		locked.Name = node.Name
		locked.Label = newLabel
		locked.Path = newPath
		locked.Description = node.Description
		locked.IsPublic = node.IsPublic
		locked.UpdatedBy = updatedBy
		locked.UpdatedAt = node.UpdatedAt
		if err := catRepo.Update(locked); err != nil {
			return err
		}
		if _, err := catRepo.RewriteDescendantPaths(oldPath, newPath, updatedBy, node.UpdatedAt); err != nil {
			return err
		}
		*node = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(node), nil
}

// Delete elimina una categoría. Se rechaza si tiene hijos o si alguna versión
// de parte la referencia; las guardas corren dentro de la misma transacción
// que el DELETE para no dejar ventanas de carrera.
func (uc *CategoryUseCase) Delete(ctx context.Context, id, deletedBy string) error {
	return uc.txRunner.Run(ctx, func(catRepo repository.CategoryRepository, cfRepo repository.CustomFieldRepository, partRepo repository.PartRepository) error {
		node, err := catRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}
		hasChildren, err := catRepo.HasChildren(id)
		if err != nil {
			return err
		}
		if hasChildren {
			return domain.ErrHasChildren
		}
		refs, err := partRepo.CountVersionsByCategory(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrReferencedByParts
		}
		if err := cfRepo.DeleteByCategory(id); err != nil {
			return err
		}
		return catRepo.Delete(id)
	})
}

// GetCustomFields devuelve los campos personalizados de la categoría.
func (uc *CategoryUseCase) GetCustomFields(id string) (*dto.CustomFieldsResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNotFound
	}
	fields, err := uc.cfRepo.ListByCategory(id)
	if err != nil {
		return nil, err
	}
	return toCustomFieldsResponse(id, fields), nil
}

// UpdateCustomFields reemplaza el conjunto completo de campos personalizados.
func (uc *CategoryUseCase) UpdateCustomFields(ctx context.Context, id, updatedBy string, in dto.UpdateCustomFieldsRequest) (*dto.CustomFieldsResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNotFound
	}
	fields := customFieldsFromInput(id, in.Fields)
	err = uc.txRunner.Run(ctx, func(catRepo repository.CategoryRepository, cfRepo repository.CustomFieldRepository, _ repository.PartRepository) error {
		return cfRepo.ReplaceForCategory(id, fields)
	})
	if err != nil {
		return nil, err
	}
	return toCustomFieldsResponse(id, fields), nil
}

func customFieldsFromInput(categoryID string, in map[string]dto.CustomFieldInput) []*entity.CustomField {
	if len(in) == 0 {
		return nil
	}
	fields := make([]*entity.CustomField, 0, len(in))
	for name, v := range in {
		fieldType := v.Type
		if fieldType == "" {
			fieldType = "text"
		}
		fields = append(fields, &entity.CustomField{
			CategoryID: categoryID,
			Name:       name,
			Type:       fieldType,
			Value:      v.Value,
		})
	}
	return fields
}

func toCustomFieldsResponse(categoryID string, fields []*entity.CustomField) *dto.CustomFieldsResponse {
	out := make(map[string]dto.CustomFieldInput, len(fields))
	for _, f := range fields {
		out[f.Name] = dto.CustomFieldInput{Type: f.Type, Value: f.Value}
	}
	return &dto.CustomFieldsResponse{CategoryID: categoryID, Fields: out}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Path:        c.Path,
		Description: c.Description,
		IsPublic:    c.IsPublic,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedBy:   c.UpdatedBy,
		UpdatedAt:   c.UpdatedAt,
	}
}
