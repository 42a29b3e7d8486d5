package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de
// jerarquía: nodo + campos personalizados + reescritura de subárbol hacen
// Commit o Rollback juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		cfRepo repository.CustomFieldRepository,
		partRepo repository.PartRepository,
	) error) error
}

// CatalogReportRow fila del reporte PDF: categoría en pre-orden con su
// profundidad y el número de versiones de partes que la referencian.
type CatalogReportRow struct {
	ID       string
	Name     string
	Path     string
	Depth    int
	IsPublic bool
	Versions int
}

// CatalogPDFGenerator genera la representación PDF del árbol del catálogo.
// Lo implementa infrastructure/pdf.
type CatalogPDFGenerator interface {
	GenerateTreeReport(ctx context.Context, rows []CatalogReportRow) ([]byte, error)
}
