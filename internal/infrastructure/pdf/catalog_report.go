// Package pdf implementa la generación del reporte gráfico del catálogo de
// categorías usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría (indentada por nivel) | Path | Versiones   │
//	│  ...una fila por categoría, en pre-orden del árbol...        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalogo-partes/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoCatalogGenerator implementa usecase.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateTreeReport genera el PDF del árbol y devuelve sus bytes. Las filas
// llegan ya ordenadas por path, es decir en pre-orden.
func (g *MarotoCatalogGenerator) GenerateTreeReport(_ context.Context, rows []usecase.CatalogReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de categorías", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(categoryRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación + total (der).
func headerRow(total int) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CATÁLOGO DE CATEGORÍAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d categorías", total), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(5).Add(text.New("Categoría", header)),
		col.New(4).Add(text.New("Path", header)),
		col.New(1).Add(text.New("Pública", header)),
		col.New(2).Add(text.New("Versiones", propsRight(header))),
	)
}

// categoryRow: una categoría, con el nombre indentado según su profundidad
// para que el listado se lea como un árbol.
func categoryRow(r usecase.CatalogReportRow) core.Row {
	indent := strings.Repeat("    ", r.Depth-1)
	visible := "no"
	if r.IsPublic {
		visible = "sí"
	}
	cell := props.Text{Size: 8, Top: 1}
	return row.New(6).Add(
		col.New(5).Add(text.New(indent+r.Name, cell)),
		col.New(4).Add(text.New(r.Path, props.Text{Size: 7, Top: 1, Color: colorGray})),
		col.New(1).Add(text.New(visible, cell)),
		col.New(2).Add(text.New(strconv.Itoa(r.Versions), propsRight(cell))),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}
