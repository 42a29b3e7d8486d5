package repository

import (
	"time"

	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
)

// CategoryFilter filtros opcionales para búsquedas de categorías.
type CategoryFilter struct {
	IsPublic  *bool
	CreatedBy string
}

// CategoryRepository define el puerto de persistencia del árbol de categorías
// (DIP). Las implementaciones deben poder atarse tanto al pool como a una
// transacción, porque el motor de movimiento reescribe subárboles completos de
// forma atómica. Los paths son materializados; "descendiente" equivale a
// prefijo estricto de path seguido del separador.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetForUpdate carga la fila con SELECT FOR UPDATE. Solo tiene sentido
	// dentro de una transacción (repo atado a tx vía TxRunner).
	GetForUpdate(id string) (*entity.Category, error)
	// GetChildByLabel busca un hijo directo por etiqueta sanitizada; parentID
	// vacío consulta entre las raíces.
	GetChildByLabel(parentID, label string) (*entity.Category, error)
	ListRoots() ([]*entity.Category, error)
	ListChildren(parentID string) ([]*entity.Category, error)
	// ListDescendants devuelve todos los nodos cuyo path extiende estrictamente
	// a path, en pre-orden (ordenado por path).
	ListDescendants(path string) ([]*entity.Category, error)
	// ListByPaths devuelve los nodos cuyos paths coinciden exactamente,
	// ordenados por path (raíz primero). Se usa para breadcrumbs.
	ListByPaths(paths []string) ([]*entity.Category, error)
	// ListAll devuelve el árbol completo en pre-orden. Lo usa el reporte PDF.
	ListAll() ([]*entity.Category, error)
	Search(query string, filter CategoryFilter, limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	// RewriteDescendantPaths sustituye el prefijo oldPath por newPath en todos
	// los descendientes, en UNA sola sentencia. Devuelve filas afectadas.
	RewriteDescendantPaths(oldPath, newPath, updatedBy string, at time.Time) (int64, error)
	HasChildren(id string) (bool, error)
	Delete(id string) error
}
