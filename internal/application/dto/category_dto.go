package dto

import "time"

// CustomFieldInput valor tipado de un campo personalizado.
type CustomFieldInput struct {
	Type  string `json:"type"` // text, number, bool
	Value string `json:"value"`
}

// CreateCategoryRequest alta de categoría. ParentID vacío crea una raíz. Los
// campos personalizados se escriben en la misma transacción que el nodo.
type CreateCategoryRequest struct {
	Name         string                      `json:"name"`
	ParentID     string                      `json:"parent_id,omitempty"`
	Description  string                      `json:"description,omitempty"`
	IsPublic     bool                        `json:"is_public"`
	CustomFields map[string]CustomFieldInput `json:"custom_fields,omitempty"`
}

// UpdateCategoryRequest actualización parcial. Un cambio de Name renombra el
// segmento del path y cascadea a todos los descendientes.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// MoveCategoryRequest reparenting. NewParentID vacío mueve el nodo a raíz.
type MoveCategoryRequest struct {
	NewParentID string `json:"new_parent_id,omitempty"`
}

// SearchCategoriesRequest búsqueda por subcadena de nombre con filtros.
type SearchCategoriesRequest struct {
	Query     string `query:"q"`
	IsPublic  *bool  `query:"is_public"`
	CreatedBy string `query:"created_by"`
	PageRequest
}

// CategoryResponse representación externa de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	ParentID    string    `json:"parent_id,omitempty"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedBy   string    `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListResponse listado paginado o completo de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  *PageResponse      `json:"page,omitempty"`
}

// BreadcrumbsResponse cadena de ancestros, raíz primero, incluyendo el nodo.
type BreadcrumbsResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CustomFieldsResponse campos personalizados de una categoría.
type CustomFieldsResponse struct {
	CategoryID string                      `json:"category_id"`
	Fields     map[string]CustomFieldInput `json:"fields"`
}

// UpdateCustomFieldsRequest reemplazo completo de los campos personalizados.
type UpdateCustomFieldsRequest struct {
	Fields map[string]CustomFieldInput `json:"fields"`
}
