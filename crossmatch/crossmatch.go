package crossmatch

import (
	"fmt"
	"slices"

	"github.com/dirac-institute/TESSHacks/catalog"
)

// Identifier columns used to join the catalog with the reference tables
const (
	CATALOG_KEY   string = "tess_id"
	REFERENCE_KEY string = "ticid"
)

// Loads a cross-match table and checks it has the REFERENCE_KEY column
func ReadReference(filename string) (*Table, error) {
	table, err := ReadTable(filename)
	if err != nil {
		return nil, err
	}

	if table.Index(REFERENCE_KEY) < 0 {
		return nil, fmt.Errorf("%s: %w: %q", filename, ErrColumnNotFound, REFERENCE_KEY)
	}
	return table, nil
}

// Concatenates the reference tables and joins them with the catalog on tess_id == ticid.
// Without reference tables the result is empty.
func CrossmatchTables(rows []catalog.Row, references []*Table) (*Table, error) {
	if len(references) == 0 {
		return NewTable(slices.Clone(catalog.COLUMNS)), nil
	}

	merged := Concat(references...)
	return Merge(FromCatalog(rows), merged, CATALOG_KEY, REFERENCE_KEY)
}

// Loads all the reference files and joins them with the catalog.
// Any file that cannot be read aborts the whole operation.
func Crossmatch(rows []catalog.Row, files []string) (*Table, error) {
	references, err := ReadReferences(files, nil)
	if err != nil {
		return nil, err
	}
	return CrossmatchTables(rows, references)
}

// Reads the reference files in order. onRead, if not nil, is called after each file is loaded.
// The first unreadable file aborts the whole read
func ReadReferences(files []string, onRead func(filename string, table *Table)) ([]*Table, error) {
	references := make([]*Table, 0, len(files))
	for _, filename := range files {
		table, err := ReadReference(filename)
		if err != nil {
			return nil, err
		}
		if onRead != nil {
			onRead(filename, table)
		}
		references = append(references, table)
	}
	return references, nil
}
