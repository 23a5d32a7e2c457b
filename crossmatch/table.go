package crossmatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/gocarina/gocsv"

	"github.com/dirac-institute/TESSHacks/catalog"
)

// Returned when a table does not have a column needed for the merge
var ErrColumnNotFound = errors.New("column not found")

// In-memory table of string cells, nil cells are nulls
type Table struct {
	Columns []string
	Rows    [][]*string
}

func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Returns the position of the column or -1 if it is not present
func (t *Table) Index(column string) int {
	return slices.Index(t.Columns, column)
}

func (t *Table) mustIndex(column string) (int, error) {
	i := t.Index(column)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	return i, nil
}

// Returns all the cells of a column
func (t *Table) Column(column string) ([]*string, error) {
	i, err := t.mustIndex(column)
	if err != nil {
		return nil, err
	}

	cells := make([]*string, len(t.Rows))
	for j, row := range t.Rows {
		cells[j] = row[i]
	}
	return cells, nil
}

// Returns the value of a cell, the boolean is false for null cells and unknown columns
func (t *Table) Value(row int, column string) (string, bool) {
	i := t.Index(column)
	if i < 0 || t.Rows[row][i] == nil {
		return "", false
	}
	return *t.Rows[row][i], true
}

// Appends a record, empty strings are stored as nulls.
// The table keeps pointers into record, so it must not be reused by the caller
func (t *Table) AppendRecord(record []string) {
	row := make([]*string, len(record))
	for i := range record {
		if record[i] != "" {
			row[i] = &record[i]
		}
	}
	t.Rows = append(t.Rows, row)
}

// Loads a delimited file. The first record is the header, empty cells are read as nulls
func ReadTable(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := ParseTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return table, nil
}

func ParseTable(r io.Reader) (*Table, error) {
	records, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, errors.New("no header found")
	}

	table := NewTable(records[0])
	for _, record := range records[1:] {
		table.AppendRecord(record)
	}
	return table, nil
}

// Writes the table with a header row, nulls are written as empty cells
func (t *Table) WriteCSV(w io.Writer) error {
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = ""
			if cell != nil {
				record[i] = *cell
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.New("Could not write to file: " + err.Error())
		}
	}

	writer.Flush()
	return writer.Error()
}

// Converts catalog rows to a Table with catalog.COLUMNS
func FromCatalog(rows []catalog.Row) *Table {
	table := NewTable(slices.Clone(catalog.COLUMNS))
	for _, row := range rows {
		table.AppendRecord(row.Record())
	}
	return table
}
