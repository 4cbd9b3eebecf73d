package domain

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indique qu'une colonne requise est absente du batch.
// Contrairement aux lignes malformées (exclues silencieusement), une colonne
// manquante est une violation de contrat du collaborateur amont: erreur fatale
var ErrMissingColumn = errors.New("required column missing from input batch")

// ErrRowArity indique qu'une ligne n'a pas le même nombre de cellules que
// l'en-tête du batch
var ErrRowArity = errors.New("row width does not match column count")

// Table représente un batch tabulaire brut tel que fourni par l'entrepôt:
// colonnes nommées dans un ordre arbitraire, cellules textuelles nullables.
// C'est le format d'échange avec le collaborateur de requêtage externe
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]*string
}

// NewTable crée une table vide avec les colonnes données
func NewTable(columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Table{
		columns: append([]string{}, columns...),
		index:   index,
	}
}

// AppendRow ajoute une ligne; nil représente une cellule NULL
func (t *Table) AppendRow(cells []*string) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrRowArity, len(cells), len(t.columns))
	}
	t.rows = append(t.rows, cells)
	return nil
}

// Columns retourne les noms de colonnes dans l'ordre du batch
func (t *Table) Columns() []string {
	return append([]string{}, t.columns...)
}

// Len retourne le nombre de lignes
func (t *Table) Len() int {
	return len(t.rows)
}

// Column retourne l'index d'une colonne, ou ErrMissingColumn
func (t *Table) Column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// Cell retourne la cellule (row, col); nil = NULL
func (t *Table) Cell(row, col int) *string {
	return t.rows[row][col]
}
