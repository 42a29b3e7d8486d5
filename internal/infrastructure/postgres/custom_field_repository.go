package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

var _ repository.CustomFieldRepository = (*CustomFieldRepo)(nil)

// CustomFieldRepo implementación del puerto CustomFieldRepository sobre
// PostgreSQL (tabla category_custom_fields).
type CustomFieldRepo struct {
	q Querier
}

// NewCustomFieldRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomFieldRepository(q Querier) *CustomFieldRepo {
	return &CustomFieldRepo{q: q}
}

// ListByCategory lista los campos de una categoría ordenados por nombre.
func (r *CustomFieldRepo) ListByCategory(categoryID string) ([]*entity.CustomField, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT category_id, name, type, value FROM category_custom_fields WHERE category_id = $1 ORDER BY name`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("list custom fields: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomField
	for rows.Next() {
		var f entity.CustomField
		if err := rows.Scan(&f.CategoryID, &f.Name, &f.Type, &f.Value); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// ReplaceForCategory reemplaza el conjunto completo de campos. Invocar con un
// repo atado a la misma transacción que la escritura del nodo.
func (r *CustomFieldRepo) ReplaceForCategory(categoryID string, fields []*entity.CustomField) error {
	if err := r.DeleteByCategory(categoryID); err != nil {
		return err
	}
	for _, f := range fields {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO category_custom_fields (category_id, name, type, value) VALUES ($1, $2, $3, $4)`,
			categoryID, f.Name, f.Type, f.Value)
		if err != nil {
			return fmt.Errorf("insert custom field %q: %w", f.Name, err)
		}
	}
	return nil
}

// DeleteByCategory borra todos los campos de la categoría.
func (r *CustomFieldRepo) DeleteByCategory(categoryID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM category_custom_fields WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete custom fields: %w", err)
	}
	return nil
}
