package repository

import "github.com/jhoicas/catalogo-partes/internal/domain/entity"

// CustomFieldRepository puerto de persistencia para los campos personalizados
// de una categoría (tabla lateral, sin rol estructural).
type CustomFieldRepository interface {
	ListByCategory(categoryID string) ([]*entity.CustomField, error)
	// ReplaceForCategory reemplaza el conjunto completo de campos de la
	// categoría. Debe invocarse con un repo atado a la misma transacción que la
	// escritura del nodo para no romper la atomicidad de create/update.
	ReplaceForCategory(categoryID string, fields []*entity.CustomField) error
	DeleteByCategory(categoryID string) error
}
