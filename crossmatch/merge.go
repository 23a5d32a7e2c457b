package crossmatch

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Suffixes added to overlapping column names in Merge
const (
	LEFT_SUFFIX  string = "_x"
	RIGHT_SUFFIX string = "_y"
)

// Row-wise union of tables. The resulting columns are the sorted union of the input columns
// and cells of columns missing from an input table are null. Rows are not deduplicated.
func Concat(tables ...*Table) *Table {
	var columns []string
	for _, t := range tables {
		for _, col := range t.Columns {
			if !slices.Contains(columns, col) {
				columns = append(columns, col)
			}
		}
	}
	slices.Sort(columns)

	out := NewTable(columns)
	for _, t := range tables {
		// Position of each output column in t, -1 if missing
		positions := make([]int, len(columns))
		for i, col := range columns {
			positions[i] = t.Index(col)
		}

		for _, row := range t.Rows {
			newRow := make([]*string, len(columns))
			for i, pos := range positions {
				if pos >= 0 {
					newRow[i] = row[pos]
				}
			}
			out.Rows = append(out.Rows, newRow)
		}
	}
	return out
}

// Normalizes an identifier cell to int64. Integral floats such as "123.0" are accepted,
// since identifier columns with nulls are often dumped as floats
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return id, nil
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("could not parse identifier %q: %w", s, err)
	}
	return int64(f), nil
}

// Returns the keys of a column as int64. Null cells are returned as nil
func (t *Table) keys(column string) ([]*int64, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	keys := make([]*int64, len(cells))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		id, err := ParseID(*cell)
		if err != nil {
			return nil, fmt.Errorf("column %q, row %d: %w", column, i, err)
		}
		keys[i] = &id
	}
	return keys, nil
}

// Inner join of left and right where left[leftOn] == right[rightOn].
// Both key columns are normalized to int64 before matching, null keys never match.
// The output has all the left columns followed by the right ones (the right key is dropped if
// it has the same name as the left key). Any other overlapping names get the LEFT_SUFFIX and
// RIGHT_SUFFIX suffixes. Left row order is preserved and a left row is repeated once per match.
func Merge(left, right *Table, leftOn, rightOn string) (*Table, error) {
	leftKeys, err := left.keys(leftOn)
	if err != nil {
		return nil, err
	}
	rightKeys, err := right.keys(rightOn)
	if err != nil {
		return nil, err
	}

	// Positions of the right columns that end up in the output
	var rightCols []int
	for i, col := range right.Columns {
		if leftOn == rightOn && col == rightOn {
			continue
		}
		rightCols = append(rightCols, i)
	}

	columns := make([]string, 0, len(left.Columns)+len(rightCols))
	for _, col := range left.Columns {
		if right.Index(col) >= 0 && !(leftOn == rightOn && col == leftOn) {
			col += LEFT_SUFFIX
		}
		columns = append(columns, col)
	}
	for _, i := range rightCols {
		col := right.Columns[i]
		if left.Index(col) >= 0 {
			col += RIGHT_SUFFIX
		}
		columns = append(columns, col)
	}

	index := make(map[int64][]int)
	for i, key := range rightKeys {
		if key != nil {
			index[*key] = append(index[*key], i)
		}
	}

	out := NewTable(columns)
	for i, key := range leftKeys {
		if key == nil {
			continue
		}
		for _, j := range index[*key] {
			row := make([]*string, 0, len(columns))
			row = append(row, left.Rows[i]...)
			for _, k := range rightCols {
				row = append(row, right.Rows[j][k])
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
