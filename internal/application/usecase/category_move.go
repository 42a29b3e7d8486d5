package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// MoveCategoryUseCase es el motor de reparenting: valida el destino, veta
// ciclos con el ClosureOracle y reescribe el path del nodo y de todo su
// subárbol en una única transacción. Nunca es observable un árbol a medio
// mover: el nodo se actualiza con un UPDATE y los descendientes con otro que
// sustituye el prefijo antiguo en una sola sentencia.
type MoveCategoryUseCase struct {
	txRunner TxRunner
	maxDepth int
}

// NewMoveCategoryUseCase construye el motor de movimiento.
func NewMoveCategoryUseCase(txRunner TxRunner, maxDepth int) *MoveCategoryUseCase {
	return &MoveCategoryUseCase{txRunner: txRunner, maxDepth: maxDepth}
}

// Move reubica la categoría bajo newParentID (vacío = raíz). Cualquier fallo
// antes o durante la reescritura revierte la transacción completa; el árbol
// queda exactamente como estaba.
func (uc *MoveCategoryUseCase) Move(ctx context.Context, id, newParentID, movedBy string) (*dto.CategoryResponse, error) {
	var moved *entity.Category
	err := uc.txRunner.Run(ctx, func(catRepo repository.CategoryRepository, _ repository.CustomFieldRepository, _ repository.PartRepository) error {
		// Bloquea el nodo movido: dos moves concurrentes del mismo nodo se
		// serializan aquí en vez de entrelazar sus reescrituras de prefijo.
		node, err := catRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}
		if newParentID == node.ID {
			return domain.ErrCircularReference
		}

		newParentPath := ""
		if newParentID != "" {
			parent, err := catRepo.GetByID(newParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return domain.ErrInvalidParent
			}
			oracle := NewClosureOracle(catRepo)
			below, err := oracle.IsDescendant(node.ID, newParentID)
			if err != nil {
				return err
			}
			if below {
				return domain.ErrCircularReference
			}
			newParentPath = parent.Path
		}

		newPath := hierarchy.Join(newParentPath, node.Label)
		if hierarchy.Depth(newPath) > uc.maxDepth {
			return domain.ErrValidation
		}
		sibling, err := catRepo.GetChildByLabel(newParentID, node.Label)
		if err != nil {
			return err
		}
		if sibling != nil && sibling.ID != node.ID {
			return domain.ErrDuplicateName
		}

		oldPath := node.Path
		now := time.Now()
		node.ParentID = newParentID
		node.Path = newPath
		node.UpdatedBy = movedBy
		node.UpdatedAt = now
		if err := catRepo.Update(node); err != nil {
			return err
		}
		if oldPath != newPath {
			if _, err := catRepo.RewriteDescendantPaths(oldPath, newPath, movedBy, now); err != nil {
				return err
			}
		}
		moved = node
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(moved), nil
}
