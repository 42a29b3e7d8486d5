package entity

import "time"

// Category es un nodo del árbol de categorías del catálogo de partes.
// Path es derivado: segmentos sanitizados desde la raíz hasta el nodo, unidos
// por el separador de hierarchy. Nunca lo fija el caller directamente.
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Label       string // segmento sanitizado del nombre, usado dentro de Path
	Path        string // path materializado, ej. "resistors.smd.0402"
	Description string
	IsPublic    bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedBy   string
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// CustomField valor tipado de un campo personalizado, en tabla lateral por
// categoría. No participa del invariante estructural del árbol.
type CustomField struct {
	CategoryID string
	Name       string
	Type       string // text, number, bool
	Value      string
}
