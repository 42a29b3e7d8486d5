package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/application/usecase"
)

// captureGenerator retiene las filas recibidas en lugar de renderizar PDF.
type captureGenerator struct {
	rows []usecase.CatalogReportRow
}

func (g *captureGenerator) GenerateTreeReport(_ context.Context, rows []usecase.CatalogReportRow) ([]byte, error) {
	g.rows = rows
	return []byte("%PDF-fake"), nil
}

func TestCatalogReport_FilasEnPreOrdenConConteos(t *testing.T) {
	f := newFixture()
	_, resistors, smd, _ := seedTree(t, f)

	uc := usecase.NewPartUseCase(f.partRepo, f.catRepo)
	part, err := uc.Create("tester", dto.CreatePartRequest{PartNumber: "R-1", Name: "r"})
	require.NoError(t, err)
	_, err = uc.CreateVersion("tester", part.ID, dto.CreatePartVersionRequest{CategoryID: smd.ID})
	require.NoError(t, err)
	_, err = uc.CreateVersion("tester", part.ID, dto.CreatePartVersionRequest{CategoryID: smd.ID})
	require.NoError(t, err)

	gen := &captureGenerator{}
	reportUC := usecase.NewCatalogReportUseCase(f.catRepo, f.partRepo, gen)

	pdf, err := reportUC.GenerateTreePDF(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.Len(t, gen.rows, 4)
	paths := []string{gen.rows[0].Path, gen.rows[1].Path, gen.rows[2].Path, gen.rows[3].Path}
	assert.Equal(t, []string{"passive_components", "resistors", "resistors.smd", "resistors.smd.0402"}, paths,
		"las filas llegan en pre-orden del árbol")

	for _, row := range gen.rows {
		switch row.ID {
		case smd.ID:
			assert.Equal(t, 2, row.Versions, "smd tiene dos versiones apuntando")
			assert.Equal(t, 2, row.Depth)
		case resistors.ID:
			assert.Equal(t, 0, row.Versions)
			assert.Equal(t, 1, row.Depth)
		}
	}
}
