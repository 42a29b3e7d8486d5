package repository

import "github.com/jhoicas/catalogo-partes/internal/domain/entity"

// PartRepository puerto de persistencia para partes y sus versiones. Es un
// almacén plano: la única interacción con el árbol de categorías es el conteo
// de versiones por categoría, que alimenta la guarda de borrado.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByPartNumber(partNumber string) (*entity.Part, error)
	List(limit, offset int) ([]*entity.Part, error)
	CreateVersion(version *entity.PartVersion) error
	ListVersions(partID string) ([]*entity.PartVersion, error)
	ListVersionsByCategory(categoryID string) ([]*entity.PartVersion, error)
	CountVersionsByCategory(categoryID string) (int, error)
}
