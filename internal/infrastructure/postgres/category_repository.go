package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, parent_id, name, label, path, description, is_public, created_by, created_at, updated_by, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// El path materializado vive en la columna path (TEXT indexada con
// text_pattern_ops); descendencia = prefijo de path + separador.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste un nuevo nodo. La colisión de etiqueta entre hermanos la
// ataja el constraint único (parent_id, label) y se mapea a ErrDuplicateName.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, label, path, description, is_public, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, nullableID(category.ParentID), category.Name, category.Label, category.Path,
		category.Description, category.IsPublic,
		category.CreatedBy, category.CreatedAt, category.UpdatedBy, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidParent
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategoryRow(row, "get category")
}

// GetForUpdate obtiene la categoría bloqueando la fila (SELECT FOR UPDATE).
// Evita que dos movimientos concurrentes del mismo nodo entrelacen sus
// reescrituras de prefijo.
func (r *CategoryRepo) GetForUpdate(id string) (*entity.Category, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
	return scanCategoryRow(row, "get category for update")
}

// GetChildByLabel busca un hijo directo por etiqueta sanitizada. parentID
// vacío busca entre las raíces.
func (r *CategoryRepo) GetChildByLabel(parentID, label string) (*entity.Category, error) {
	var row pgx.Row
	if parentID == "" {
		row = r.q.QueryRow(context.Background(),
			`SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL AND label = $1`, label)
	} else {
		row = r.q.QueryRow(context.Background(),
			`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 AND label = $2`, parentID, label)
	}
	return scanCategoryRow(row, "get child by label")
}

// ListRoots lista las categorías raíz ordenadas por path.
func (r *CategoryRepo) ListRoots() ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL ORDER BY path`, nil)
}

// ListChildren lista los hijos directos de una categoría, ordenados por path.
func (r *CategoryRepo) ListChildren(parentID string) ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY path`, []any{parentID})
}

// ListDescendants lista todo el subárbol estricto de path en pre-orden.
func (r *CategoryRepo) ListDescendants(path string) ([]*entity.Category, error) {
	pattern := escapeLike(path) + `.%`
	return r.list(`SELECT `+categoryColumns+` FROM categories WHERE path LIKE $1 ESCAPE '\' ORDER BY path`, []any{pattern})
}

// ListByPaths devuelve los nodos con path exacto, ordenados por path. Como los
// prefijos ordenan antes que sus extensiones, el resultado llega raíz primero.
func (r *CategoryRepo) ListByPaths(paths []string) ([]*entity.Category, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	return r.list(`SELECT `+categoryColumns+` FROM categories WHERE path = ANY($1) ORDER BY path`, []any{paths})
}

// ListAll devuelve el árbol completo en pre-orden (por path).
func (r *CategoryRepo) ListAll() ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories ORDER BY path`, nil)
}

// Search busca por subcadena de nombre (case-insensitive) con filtros
// opcionales de visibilidad y creador, ordenado por nombre y paginado.
func (r *CategoryRepo) Search(query string, filter repository.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	sql := `SELECT ` + categoryColumns + ` FROM categories WHERE name ILIKE $1 ESCAPE '\'`
	args := []any{`%` + escapeLike(query) + `%`}
	if filter.IsPublic != nil {
		args = append(args, *filter.IsPublic)
		sql += fmt.Sprintf(` AND is_public = $%d`, len(args))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		sql += fmt.Sprintf(` AND created_by = $%d`, len(args))
	}
	args = append(args, limit, offset)
	sql += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	return r.list(sql, args)
}

// Update actualiza el nodo (nombre, label, path, atributos y auditoría).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET parent_id = $2, name = $3, label = $4, path = $5, description = $6, is_public = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		category.ID, nullableID(category.ParentID), category.Name, category.Label, category.Path,
		category.Description, category.IsPublic, category.UpdatedBy, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RewriteDescendantPaths sustituye el prefijo ancestral en todos los
// descendientes con UNA sola sentencia UPDATE, de modo que ningún lector
// concurrente pueda observar un subárbol a medio reescribir.
func (r *CategoryRepo) RewriteDescendantPaths(oldPath, newPath, updatedBy string, at time.Time) (int64, error) {
	query := `
		UPDATE categories
		SET path = $1 || substring(path FROM char_length($2) + 1), updated_by = $3, updated_at = $4
		WHERE path LIKE $5 ESCAPE '\'`
	cmd, err := r.q.Exec(context.Background(), query,
		newPath, oldPath, updatedBy, at, escapeLike(oldPath)+`.%`,
	)
	if err != nil {
		return 0, fmt.Errorf("rewrite descendant paths: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// HasChildren indica si existe algún hijo directo.
func (r *CategoryRepo) HasChildren(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has children: %w", err)
	}
	return exists, nil
}

// Delete elimina la fila (hard delete). Las referencias desde part_versions
// están protegidas por FK; una violación se mapea a ErrReferencedByParts como
// respaldo de la guarda del caso de uso.
func (r *CategoryRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferencedByParts
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) list(sql string, args []any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCategoryRow(row pgx.Row, op string) (*entity.Category, error) {
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parent *string
	err := row.Scan(&c.ID, &parent, &c.Name, &c.Label, &c.Path, &c.Description, &c.IsPublic,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedBy, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		c.ParentID = *parent
	}
	return &c, nil
}

// nullableID convierte ID vacío (raíz) en NULL.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
