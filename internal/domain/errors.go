package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea a
// códigos de estado; cualquier otro error de almacenamiento se propaga envuelto.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidParent     = errors.New("categoría padre inválida o inexistente")
	ErrDuplicateName     = errors.New("ya existe una categoría hermana con esa etiqueta")
	ErrHasChildren       = errors.New("la categoría tiene subcategorías")
	ErrReferencedByParts = errors.New("la categoría está referenciada por versiones de partes")
	ErrCircularReference = errors.New("el movimiento crearía un ciclo en el árbol")
	ErrValidation        = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
