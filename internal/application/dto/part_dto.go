package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest alta de una parte del catálogo.
type CreatePartRequest struct {
	PartNumber  string          `json:"part_number"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePartVersionRequest alta de una revisión asociada a una categoría.
type CreatePartVersionRequest struct {
	CategoryID string `json:"category_id"`
	Status     string `json:"status,omitempty"` // default: draft
}

// PartResponse representación externa de una parte.
type PartResponse struct {
	ID          string          `json:"id"`
	PartNumber  string          `json:"part_number"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PartVersionResponse representación externa de una versión de parte.
type PartVersionResponse struct {
	ID         string    `json:"id"`
	PartID     string    `json:"part_id"`
	Revision   int       `json:"revision"`
	CategoryID string    `json:"category_id"`
	Status     string    `json:"status"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// PartListResponse listado paginado de partes.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PartVersionListResponse versiones de una parte.
type PartVersionListResponse struct {
	Items []PartVersionResponse `json:"items"`
}
