package usecase

import (
	"strings"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// CategoryQueryUseCase lado de lectura del árbol: consultas de ancestros,
// descendientes, raíces y búsqueda. No toma locks; corre sobre el pool con el
// aislamiento por defecto del almacén.
type CategoryQueryUseCase struct {
	catRepo repository.CategoryRepository
}

// NewCategoryQueryUseCase construye el caso de uso de lectura.
func NewCategoryQueryUseCase(catRepo repository.CategoryRepository) *CategoryQueryUseCase {
	return &CategoryQueryUseCase{catRepo: catRepo}
}

// GetByID obtiene una categoría. Devuelve (nil, nil) si no existe.
func (uc *CategoryQueryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, nil
	}
	return toCategoryResponse(node), nil
}

// ListChildren lista un nivel: los hijos directos de parentID, o las raíces
// si parentID es vacío. Ordenado por path.
func (uc *CategoryQueryUseCase) ListChildren(parentID string) (*dto.CategoryListResponse, error) {
	var list []*entity.Category
	var err error
	if parentID == "" {
		list, err = uc.catRepo.ListRoots()
	} else {
		list, err = uc.catRepo.ListChildren(parentID)
	}
	if err != nil {
		return nil, err
	}
	return toCategoryListResponse(list, nil), nil
}

// ListDescendants lista el subárbol estricto de la categoría en pre-orden.
func (uc *CategoryQueryUseCase) ListDescendants(id string) (*dto.CategoryListResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.catRepo.ListDescendants(node.Path)
	if err != nil {
		return nil, err
	}
	return toCategoryListResponse(list, nil), nil
}

// Breadcrumbs devuelve la cadena de ancestros, raíz primero, terminando en el
// propio nodo. Los ancestros son exactamente los nodos cuyos paths son
// prefijos estrictos del path del nodo.
func (uc *CategoryQueryUseCase) Breadcrumbs(id string) (*dto.BreadcrumbsResponse, error) {
	node, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNotFound
	}
	chain, err := uc.catRepo.ListByPaths(hierarchy.AncestorPaths(node.Path))
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(chain))
	for _, c := range chain {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.BreadcrumbsResponse{Items: items}, nil
}

// Search búsqueda case-insensitive por subcadena de nombre con filtros de
// visibilidad/creador, ordenada por nombre y paginada.
func (uc *CategoryQueryUseCase) Search(in dto.SearchCategoriesRequest) (*dto.CategoryListResponse, error) {
	in.DefaultPage()
	filter := repository.CategoryFilter{
		IsPublic:  in.IsPublic,
		CreatedBy: in.CreatedBy,
	}
	list, err := uc.catRepo.Search(strings.TrimSpace(in.Query), filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toCategoryListResponse(list, &dto.PageResponse{Limit: in.Limit, Offset: in.Offset}), nil
}

func toCategoryListResponse(list []*entity.Category, page *dto.PageResponse) *dto.CategoryListResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: page}
}
