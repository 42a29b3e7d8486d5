package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una versión de parte.
const (
	VersionStatusDraft    = "draft"
	VersionStatusReleased = "released"
	VersionStatusObsolete = "obsolete"
)

// Part es un registro plano del catálogo; no tiene rol estructural en el árbol
// de categorías.
type Part struct {
	ID          string
	PartNumber  string // único en el catálogo
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartVersion es una revisión de una parte asociada a una categoría. Mientras
// exista una versión apuntando a una categoría, esa categoría no puede borrarse.
type PartVersion struct {
	ID         string
	PartID     string
	Revision   int
	CategoryID string
	Status     string // draft, released, obsolete
	CreatedBy  string
	CreatedAt  time.Time
}
