// Package hierarchy implementa la codificación del path materializado del
// árbol de categorías: sanitización de etiquetas, unión de segmentos y
// comparaciones de prefijo ancestral. Todo es puro y sin estado; la
// consistencia transaccional la aportan los casos de uso y el TxRunner.
package hierarchy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator une los segmentos del path materializado.
const Separator = "."

// MaxSegmentLen longitud máxima de un segmento sanitizado.
const MaxSegmentLen = 255

// stripMarks descompone (NFD) y elimina marcas diacríticas, para que
// "Categoría" sanitice a "categoria" y no a "categor_a".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize convierte una etiqueta visible en un segmento apto para el path:
// quita diacríticos, reemplaza todo carácter fuera de [A-Za-z0-9_] por "_",
// colapsa guiones bajos consecutivos, pasa a minúsculas y trunca a
// MaxSegmentLen. Es total y determinista: nunca falla. Una entrada vacía (o
// compuesta solo de espacios/símbolos colapsados) produce un segmento que el
// caller debe tratar como inválido.
func Sanitize(label string) string {
	folded, _, err := transform.String(stripMarks, label)
	if err != nil {
		folded = label
	}
	var b strings.Builder
	b.Grow(len(folded))
	prevUnderscore := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			prevUnderscore = false
		default:
			// '_' y cualquier otro carácter caen aquí; runs se colapsan a uno
			if !prevUnderscore {
				b.WriteByte('_')
			}
			prevUnderscore = true
		}
	}
	s := b.String()
	if len(s) > MaxSegmentLen {
		s = s[:MaxSegmentLen]
	}
	return s
}

// Join concatena el path del padre con un segmento. Con parentPath vacío el
// segmento es un path de raíz.
func Join(parentPath, segment string) string {
	if parentPath == "" {
		return segment
	}
	return parentPath + Separator + segment
}

// IsDescendantPath indica si candidatePath está estrictamente por debajo de
// ancestorPath (prefijo + separador; nunca true para paths iguales).
func IsDescendantPath(ancestorPath, candidatePath string) bool {
	if ancestorPath == "" {
		return false
	}
	return strings.HasPrefix(candidatePath, ancestorPath+Separator)
}

// ReplacePrefix sustituye el prefijo ancestral oldPrefix de path por
// newPrefix, preservando el sufijo relativo. Si path no pertenece al subárbol
// de oldPrefix se devuelve sin cambios.
func ReplacePrefix(path, oldPrefix, newPrefix string) string {
	if path == oldPrefix {
		return newPrefix
	}
	if !IsDescendantPath(oldPrefix, path) {
		return path
	}
	return newPrefix + path[len(oldPrefix):]
}

// Depth cuenta los segmentos del path (raíz = 1; path vacío = 0).
func Depth(path string) int {
	if path == "" {
		return 0
	}
	return strings.Count(path, Separator) + 1
}

// ParentPath devuelve el path del padre ("" para una raíz).
func ParentPath(path string) string {
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// AncestorPaths devuelve los prefijos del path de raíz a hoja, incluyendo el
// propio path como último elemento. Se usa para construir breadcrumbs.
func AncestorPaths(path string) []string {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, Separator)
	out := make([]string, 0, len(segments))
	for i := range segments {
		out = append(out, strings.Join(segments[:i+1], Separator))
	}
	return out
}
