package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso. Replican el contrato de los
// adaptadores de PostgreSQL: clones defensivos, (nil, nil) cuando no hay fila,
// orden por path y constraint de etiqueta única entre hermanos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*entity.Category)}
}

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c
	return &cp
}

func (r *fakeCategoryRepo) Create(category *entity.Category) error {
	if category.ParentID != "" {
		if _, ok := r.byID[category.ParentID]; !ok {
			return domain.ErrInvalidParent
		}
	}
	for _, c := range r.byID {
		if c.ParentID == category.ParentID && c.Label == category.Label {
			return domain.ErrDuplicateName
		}
	}
	r.byID[category.ID] = cloneCategory(category)
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(c), nil
}

func (r *fakeCategoryRepo) GetForUpdate(id string) (*entity.Category, error) {
	return r.GetByID(id)
}

func (r *fakeCategoryRepo) GetChildByLabel(parentID, label string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.ParentID == parentID && c.Label == label {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) ListRoots() ([]*entity.Category, error) {
	return r.collect(func(c *entity.Category) bool { return c.ParentID == "" }), nil
}

func (r *fakeCategoryRepo) ListChildren(parentID string) ([]*entity.Category, error) {
	return r.collect(func(c *entity.Category) bool { return c.ParentID == parentID }), nil
}

func (r *fakeCategoryRepo) ListDescendants(path string) ([]*entity.Category, error) {
	return r.collect(func(c *entity.Category) bool {
		return hierarchy.IsDescendantPath(path, c.Path)
	}), nil
}

func (r *fakeCategoryRepo) ListByPaths(paths []string) ([]*entity.Category, error) {
	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}
	return r.collect(func(c *entity.Category) bool { return want[c.Path] }), nil
}

func (r *fakeCategoryRepo) ListAll() ([]*entity.Category, error) {
	return r.collect(func(*entity.Category) bool { return true }), nil
}

func (r *fakeCategoryRepo) Search(query string, filter repository.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	q := strings.ToLower(query)
	list := r.collect(func(c *entity.Category) bool {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			return false
		}
		if filter.IsPublic != nil && c.IsPublic != *filter.IsPublic {
			return false
		}
		if filter.CreatedBy != "" && c.CreatedBy != filter.CreatedBy {
			return false
		}
		return true
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeCategoryRepo) Update(category *entity.Category) error {
	if _, ok := r.byID[category.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.byID {
		if c.ID != category.ID && c.ParentID == category.ParentID && c.Label == category.Label {
			return domain.ErrDuplicateName
		}
	}
	r.byID[category.ID] = cloneCategory(category)
	return nil
}

func (r *fakeCategoryRepo) RewriteDescendantPaths(oldPath, newPath, updatedBy string, at time.Time) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if hierarchy.IsDescendantPath(oldPath, c.Path) {
			c.Path = hierarchy.ReplacePrefix(c.Path, oldPath, newPath)
			c.UpdatedBy = updatedBy
			c.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (r *fakeCategoryRepo) HasChildren(id string) (bool, error) {
	for _, c := range r.byID {
		if c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeCategoryRepo) collect(keep func(*entity.Category) bool) []*entity.Category {
	var list []*entity.Category
	for _, c := range r.byID {
		if keep(c) {
			list = append(list, cloneCategory(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

func (r *fakeCategoryRepo) snapshot() map[string]*entity.Category {
	cp := make(map[string]*entity.Category, len(r.byID))
	for id, c := range r.byID {
		cp[id] = cloneCategory(c)
	}
	return cp
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomFieldRepo struct {
	byCategory map[string][]*entity.CustomField
	// failReplace fuerza el fallo de ReplaceForCategory para probar rollbacks.
	failReplace error
}

func newFakeCustomFieldRepo() *fakeCustomFieldRepo {
	return &fakeCustomFieldRepo{byCategory: make(map[string][]*entity.CustomField)}
}

func (r *fakeCustomFieldRepo) ListByCategory(categoryID string) ([]*entity.CustomField, error) {
	fields := r.byCategory[categoryID]
	out := make([]*entity.CustomField, len(fields))
	for i, f := range fields {
		cp := *f
		out[i] = &cp
	}
	return out, nil
}

func (r *fakeCustomFieldRepo) ReplaceForCategory(categoryID string, fields []*entity.CustomField) error {
	if r.failReplace != nil {
		return r.failReplace
	}
	cp := make([]*entity.CustomField, len(fields))
	for i, f := range fields {
		c := *f
		cp[i] = &c
	}
	r.byCategory[categoryID] = cp
	return nil
}

func (r *fakeCustomFieldRepo) DeleteByCategory(categoryID string) error {
	delete(r.byCategory, categoryID)
	return nil
}

func (r *fakeCustomFieldRepo) snapshot() map[string][]*entity.CustomField {
	cp := make(map[string][]*entity.CustomField, len(r.byCategory))
	for id, fields := range r.byCategory {
		fs := make([]*entity.CustomField, len(fields))
		for i, f := range fields {
			c := *f
			fs[i] = &c
		}
		cp[id] = fs
	}
	return cp
}

// ──────────────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	parts    map[string]*entity.Part
	versions []*entity.PartVersion
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[string]*entity.Part)}
}

func (r *fakePartRepo) Create(part *entity.Part) error {
	cp := *part
	r.parts[part.ID] = &cp
	return nil
}

func (r *fakePartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.PartNumber == partNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePartRepo) List(limit, offset int) ([]*entity.Part, error) {
	var list []*entity.Part
	for _, p := range r.parts {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PartNumber < list[j].PartNumber })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakePartRepo) CreateVersion(version *entity.PartVersion) error {
	cp := *version
	r.versions = append(r.versions, &cp)
	return nil
}

func (r *fakePartRepo) ListVersions(partID string) ([]*entity.PartVersion, error) {
	var list []*entity.PartVersion
	for _, v := range r.versions {
		if v.PartID == partID {
			cp := *v
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Revision < list[j].Revision })
	return list, nil
}

func (r *fakePartRepo) ListVersionsByCategory(categoryID string) ([]*entity.PartVersion, error) {
	var list []*entity.PartVersion
	for _, v := range r.versions {
		if v.CategoryID == categoryID {
			cp := *v
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakePartRepo) CountVersionsByCategory(categoryID string) (int, error) {
	n := 0
	for _, v := range r.versions {
		if v.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// versionFor fabrica una versión de parte apuntando a una categoría.
func versionFor(partID, categoryID string) *entity.PartVersion {
	return &entity.PartVersion{
		ID:         partID + "-v1",
		PartID:     partID,
		Revision:   1,
		CategoryID: categoryID,
		Status:     entity.VersionStatusDraft,
		CreatedAt:  time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner emula la semántica transaccional: toma un snapshot del estado
// antes de ejecutar fn y lo restaura si fn devuelve error (rollback).
type fakeTxRunner struct {
	catRepo  *fakeCategoryRepo
	cfRepo   *fakeCustomFieldRepo
	partRepo *fakePartRepo
}

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	catRepo repository.CategoryRepository,
	cfRepo repository.CustomFieldRepository,
	partRepo repository.PartRepository,
) error) error {
	catSnap := tx.catRepo.snapshot()
	cfSnap := tx.cfRepo.snapshot()
	if err := fn(tx.catRepo, tx.cfRepo, tx.partRepo); err != nil {
		tx.catRepo.byID = catSnap
		tx.cfRepo.byCategory = cfSnap
		return err
	}
	return nil
}
