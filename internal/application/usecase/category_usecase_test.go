package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-partes/internal/application/dto"
	"github.com/jhoicas/catalogo-partes/internal/application/usecase"
	"github.com/jhoicas/catalogo-partes/internal/domain"
)

const testMaxDepth = 12

type fixture struct {
	catRepo  *fakeCategoryRepo
	cfRepo   *fakeCustomFieldRepo
	partRepo *fakePartRepo
	uc       *usecase.CategoryUseCase
	moveUC   *usecase.MoveCategoryUseCase
	queryUC  *usecase.CategoryQueryUseCase
}

func newFixture() *fixture {
	catRepo := newFakeCategoryRepo()
	cfRepo := newFakeCustomFieldRepo()
	partRepo := newFakePartRepo()
	tx := &fakeTxRunner{catRepo: catRepo, cfRepo: cfRepo, partRepo: partRepo}
	return &fixture{
		catRepo:  catRepo,
		cfRepo:   cfRepo,
		partRepo: partRepo,
		uc:       usecase.NewCategoryUseCase(tx, catRepo, cfRepo, testMaxDepth),
		moveUC:   usecase.NewMoveCategoryUseCase(tx, testMaxDepth),
		queryUC:  usecase.NewCategoryQueryUseCase(catRepo),
	}
}

func (f *fixture) mustCreate(t *testing.T, name, parentID string) *dto.CategoryResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err, "crear %q no debe fallar", name)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RaizConPathSanitizado(t *testing.T) {
	f := newFixture()
	out := f.mustCreate(t, "Passive Components", "")

	assert.Equal(t, "Passive Components", out.Name, "el nombre visible conserva el original")
	assert.Equal(t, "passive_components", out.Path, "el path usa la etiqueta sanitizada")
	assert.Empty(t, out.ParentID, "una raíz no tiene padre")
}

func TestCreate_HijoExtiendeElPathDelPadre(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Passive Components", "")
	child := f.mustCreate(t, "Caps / Film (MKT)", root.ID)

	assert.Equal(t, "passive_components.caps_film_mkt_", child.Path,
		"el path del hijo es el del padre + separador + etiqueta sanitizada")
}

func TestCreate_PadreInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{
		Name:     "Huérfana",
		ParentID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidParent)
}

func TestCreate_EtiquetaDuplicadaEntreHermanos(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")
	f.mustCreate(t, "SMD", root.ID)

	// "smd" sanitiza a la misma etiqueta que "SMD": colisión.
	_, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{
		Name:     "smd",
		ParentID: root.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName,
		"dos hermanos no pueden compartir etiqueta sanitizada")
}

func TestCreate_MismaEtiquetaBajoPadresDistintos(t *testing.T) {
	f := newFixture()
	a := f.mustCreate(t, "Resistors", "")
	b := f.mustCreate(t, "Capacitors", "")

	s1 := f.mustCreate(t, "SMD", a.ID)
	s2 := f.mustCreate(t, "SMD", b.ID)
	assert.NotEqual(t, s1.Path, s2.Path, "la unicidad de etiqueta es por padre, no global")
}

func TestCreate_NombreInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation, "nombre en blanco")

	_, err = f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "///"})
	assert.ErrorIs(t, err, domain.ErrValidation, "nombre que sanitiza a _")
}

func TestCreate_ProfundidadMaxima(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	cfRepo := newFakeCustomFieldRepo()
	partRepo := newFakePartRepo()
	tx := &fakeTxRunner{catRepo: catRepo, cfRepo: cfRepo, partRepo: partRepo}
	uc := usecase.NewCategoryUseCase(tx, catRepo, cfRepo, 2)

	root, err := uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	child, err := uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "B", ParentID: root.ID})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{Name: "C", ParentID: child.ID})
	assert.ErrorIs(t, err, domain.ErrValidation, "el nivel 3 excede maxDepth=2")
}

func TestCreate_CamposPersonalizadosEnLaMismaTransaccion(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{
		Name: "Conectores",
		CustomFields: map[string]dto.CustomFieldInput{
			"pitch_mm": {Type: "number", Value: "2.54"},
		},
	})
	require.NoError(t, err)

	fields, err := f.uc.GetCustomFields(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.54", fields.Fields["pitch_mm"].Value)
}

func TestCreate_RollbackSiFallanLosCamposPersonalizados(t *testing.T) {
	f := newFixture()
	f.cfRepo.failReplace = errors.New("disco lleno")

	_, err := f.uc.Create(context.Background(), "tester", dto.CreateCategoryRequest{
		Name:         "Conectores",
		CustomFields: map[string]dto.CustomFieldInput{"pitch_mm": {Value: "2.54"}},
	})
	require.Error(t, err)

	roots, qerr := f.queryUC.ListChildren("")
	require.NoError(t, qerr)
	assert.Empty(t, roots.Items, "si fallan los campos, el nodo tampoco debe quedar escrito")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update (rename con cascada)
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_RenameCascadeaALosDescendientes(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")
	smd := f.mustCreate(t, "SMD", root.ID)
	leaf := f.mustCreate(t, "0402", smd.ID)

	name := "Fixed Resistors"
	out, err := f.uc.Update(context.Background(), root.ID, "tester", dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "fixed_resistors", out.Path)

	got, err := f.queryUC.GetByID(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed_resistors.smd.0402", got.Path,
		"el rename del ancestro reescribe los paths de todo el subárbol")
}

func TestUpdate_SinRenameNoTocaElPath(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")

	desc := "resistencias de todo tipo"
	pub := true
	out, err := f.uc.Update(context.Background(), root.ID, "tester", dto.UpdateCategoryRequest{
		Description: &desc,
		IsPublic:    &pub,
	})
	require.NoError(t, err)
	assert.Equal(t, "resistors", out.Path)
	assert.Equal(t, desc, out.Description)
	assert.True(t, out.IsPublic)
}

func TestUpdate_RenameColisionaConHermano(t *testing.T) {
	f := newFixture()
	f.mustCreate(t, "Resistors", "")
	caps := f.mustCreate(t, "Capacitors", "")

	name := "resistors"
	_, err := f.uc.Update(context.Background(), caps.ID, "tester", dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestUpdate_NoExiste(t *testing.T) {
	f := newFixture()
	name := "x"
	_, err := f.uc.Update(context.Background(), "no-existe", "tester", dto.UpdateCategoryRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ConHijosRechazado(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")
	f.mustCreate(t, "SMD", root.ID)

	err := f.uc.Delete(context.Background(), root.ID, "tester")
	assert.ErrorIs(t, err, domain.ErrHasChildren)
}

func TestDelete_ReferenciadaPorVersionesRechazado(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")
	f.partRepo.versions = append(f.partRepo.versions, versionFor("p1", root.ID))

	err := f.uc.Delete(context.Background(), root.ID, "tester")
	assert.ErrorIs(t, err, domain.ErrReferencedByParts)
}

func TestDelete_HojaSinReferencias(t *testing.T) {
	f := newFixture()
	root := f.mustCreate(t, "Resistors", "")
	leaf := f.mustCreate(t, "SMD", root.ID)
	require.NoError(t, f.cfRepo.ReplaceForCategory(leaf.ID, nil))

	err := f.uc.Delete(context.Background(), leaf.ID, "tester")
	require.NoError(t, err)

	got, err := f.queryUC.GetByID(leaf.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "la hoja debe desaparecer")

	// El padre sigue intacto y ahora es borrable.
	assert.NoError(t, f.uc.Delete(context.Background(), root.ID, "tester"))
}
