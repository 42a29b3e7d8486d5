package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-partes/internal/domain"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación del puerto PartRepository sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste una nueva parte.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, part_number, name, description, unit_price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.PartNumber, part.Name, part.Description, part.UnitPrice,
		part.CreatedBy, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID. Devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	return r.getOne(`SELECT id, part_number, name, description, unit_price, created_by, created_at, updated_at FROM parts WHERE id = $1`, id)
}

// GetByPartNumber obtiene una parte por número de parte.
func (r *PartRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	return r.getOne(`SELECT id, part_number, name, description, unit_price, created_by, created_at, updated_at FROM parts WHERE part_number = $1`, partNumber)
}

// List lista partes con paginación, ordenadas por número de parte.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, part_number, name, description, unit_price, created_by, created_at, updated_at
		 FROM parts ORDER BY part_number LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.PartNumber, &p.Name, &p.Description, &p.UnitPrice,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreateVersion persiste una nueva versión de parte asociada a una categoría.
func (r *PartRepo) CreateVersion(version *entity.PartVersion) error {
	query := `
		INSERT INTO part_versions (id, part_id, revision, category_id, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		version.ID, version.PartID, version.Revision, version.CategoryID, version.Status,
		version.CreatedBy, version.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrValidation
		}
		return fmt.Errorf("insert part version: %w", err)
	}
	return nil
}

// ListVersions lista las versiones de una parte ordenadas por revisión.
func (r *PartRepo) ListVersions(partID string) ([]*entity.PartVersion, error) {
	return r.listVersions(
		`SELECT id, part_id, revision, category_id, status, created_by, created_at
		 FROM part_versions WHERE part_id = $1 ORDER BY revision`, partID)
}

// ListVersionsByCategory lista las versiones asociadas a una categoría.
func (r *PartRepo) ListVersionsByCategory(categoryID string) ([]*entity.PartVersion, error) {
	return r.listVersions(
		`SELECT id, part_id, revision, category_id, status, created_by, created_at
		 FROM part_versions WHERE category_id = $1 ORDER BY part_id, revision`, categoryID)
}

// CountVersionsByCategory cuenta las versiones que referencian la categoría.
// Alimenta la guarda ReferencedByParts del borrado de categorías.
func (r *PartRepo) CountVersionsByCategory(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM part_versions WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count versions by category: %w", err)
	}
	return n, nil
}

func (r *PartRepo) getOne(query, arg string) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.PartNumber, &p.Name, &p.Description, &p.UnitPrice,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

func (r *PartRepo) listVersions(query, arg string) ([]*entity.PartVersion, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list part versions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PartVersion
	for rows.Next() {
		var v entity.PartVersion
		if err := rows.Scan(&v.ID, &v.PartID, &v.Revision, &v.CategoryID, &v.Status,
			&v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan part version: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
