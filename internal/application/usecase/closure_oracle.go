package usecase

import (
	"github.com/jhoicas/catalogo-partes/internal/domain/hierarchy"
	"github.com/jhoicas/catalogo-partes/internal/domain/repository"
)

// ClosureOracle responde "¿A es ancestro de B?" comparando paths
// materializados (variante de prefijo; equivalente funcional a una tabla de
// clausura, sin mantenimiento adicional al mover subárboles). Lo usa
// exclusivamente el motor de movimiento para vetar ciclos. Construirlo sobre
// un repo atado a tx hace que el veredicto sea consistente con la transacción
// del movimiento.
type ClosureOracle struct {
	catRepo repository.CategoryRepository
}

// NewClosureOracle construye el oráculo sobre el repositorio dado.
func NewClosureOracle(catRepo repository.CategoryRepository) *ClosureOracle {
	return &ClosureOracle{catRepo: catRepo}
}

// IsDescendant devuelve true si y solo si candidate está estrictamente por
// debajo de ancestor en el árbol (nunca para el mismo nodo). IDs inexistentes
// responden false.
func (o *ClosureOracle) IsDescendant(ancestorID, candidateID string) (bool, error) {
	if ancestorID == candidateID {
		return false, nil
	}
	ancestor, err := o.catRepo.GetByID(ancestorID)
	if err != nil {
		return false, err
	}
	if ancestor == nil {
		return false, nil
	}
	candidate, err := o.catRepo.GetByID(candidateID)
	if err != nil {
		return false, err
	}
	if candidate == nil {
		return false, nil
	}
	return hierarchy.IsDescendantPath(ancestor.Path, candidate.Path), nil
}
