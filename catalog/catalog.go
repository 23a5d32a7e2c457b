package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Extension of the light curve files picked up by Build
const EXTENSION string = ".fits"

var (
	// Returned when a filename has fewer than four hyphen-delimited tokens
	ErrMalformedFilename = errors.New("filename does not match <daterange>-<sector>-<id>-<cadence>")
	// Returned when the root directory passed to Build does not end with a path separator
	ErrRootSeparator = errors.New("root directory must end with a path separator")
)

// Columns of the catalog, in the order they are written out
var COLUMNS = []string{"subdir", "filename", "daterange", "sector_no", "tess_id", "cadence"}

// A single light curve file found while traversing the data directory
type Row struct {
	// Directory that contains the file
	Subdir string `csv:"subdir"`
	// Base name of the file
	Filename string `csv:"filename"`
	// Date range of the data, first token of the filename
	Daterange string `csv:"daterange"`
	// Sector number, second token of the filename
	SectorNo string `csv:"sector_no"`
	// TESS Input Catalog identifier, third token of the filename
	TessID int64 `csv:"tess_id"`
	// Cadence of the light curve, fourth token of the filename
	Cadence string `csv:"cadence"`
}

// Creates a Row from the path of a light curve file
func NewRow(path string) (Row, error) {
	row, err := ParseFilename(filepath.Base(path))
	if err != nil {
		return Row{}, fmt.Errorf("%s: %w", path, err)
	}
	row.Subdir = filepath.Base(filepath.Dir(path))
	return row, nil
}

// Decodes `<daterange>-<sector>-<id>-<cadence>...` into a Row without the Subdir.
// The whole name is split, so a cadence in the last token keeps the extension
func ParseFilename(filename string) (Row, error) {
	tokens := strings.Split(filename, "-")
	if len(tokens) < 4 {
		return Row{}, fmt.Errorf("%w: got %d token(s) in %q", ErrMalformedFilename, len(tokens), filename)
	}

	id, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("could not parse TESS ID: %w", err)
	}

	return Row{
		Filename:  filename,
		Daterange: tokens[0],
		SectorNo:  tokens[1],
		TessID:    id,
		Cadence:   tokens[3],
	}, nil
}

// Returns the row as a slice of strings matching COLUMNS
func (row *Row) Record() []string {
	return []string{
		row.Subdir,
		row.Filename,
		row.Daterange,
		row.SectorNo,
		strconv.FormatInt(row.TessID, 10),
		row.Cadence,
	}
}

// Recursively traverses root and returns one Row for each light curve file.
// Root needs to end with a path separator. Symbolic links to directories are followed.
// The first error encountered aborts the traversal and no partial results are returned.
func Build(root string) ([]Row, error) {
	if !strings.HasSuffix(root, string(os.PathSeparator)) {
		return nil, fmt.Errorf("%w: %q", ErrRootSeparator, root)
	}

	var rows []Row
	if err := walk(root, make(map[string]bool), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Walks dir, which ends with a path separator, appending to rows.
// Visited holds the resolved directories already walked, so link cycles end
func walk(dir string, visited map[string]bool, rows *[]Row) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Hidden files and directories are skipped, the same way shell globs do
		if path != dir && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			// A dangling link is treated like a file
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return walk(path+string(os.PathSeparator), visited, rows)
			}
		}

		if entry.IsDir() || filepath.Ext(entry.Name()) != EXTENSION {
			return nil
		}

		row, err := NewRow(path)
		if err != nil {
			return err
		}
		*rows = append(*rows, row)
		return nil
	})
}

// Number of files per sector
func CountSectors(rows []Row) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.SectorNo]++
	}
	return counts
}
