package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// CatalogReportUseCase arma el reporte PDF del árbol de categorías: recorre
// el árbol completo en pre-orden (orden por path) y anota cuántas versiones
// de partes referencian cada categoría.
type CatalogReportUseCase struct {
	catRepo   repository.CategoryRepository
	partRepo  repository.PartRepository
	generator CatalogPDFGenerator
}

// NewCatalogReportUseCase construye el caso de uso.
func NewCatalogReportUseCase(catRepo repository.CategoryRepository, partRepo repository.PartRepository, generator CatalogPDFGenerator) *CatalogReportUseCase {
	return &CatalogReportUseCase{catRepo: catRepo, partRepo: partRepo, generator: generator}
}

// GenerateTreePDF genera el PDF y devuelve sus bytes.
func (uc *CatalogReportUseCase) GenerateTreePDF(ctx context.Context) ([]byte, error) {
	categories, err := uc.catRepo.ListAll()
	if err != nil {
		return nil, err
	}
	rows := make([]CatalogReportRow, 0, len(categories))
	for _, c := range categories {
		versions, err := uc.partRepo.CountVersionsByCategory(c.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, CatalogReportRow{
			ID:       c.ID,
			Name:     c.Name,
			Path:     c.Path,
			Depth:    hierarchy.Depth(c.Path),
			IsPublic: c.IsPublic,
			Versions: versions,
		})
	}
	return uc.generator.GenerateTreeReport(ctx, rows)
}
