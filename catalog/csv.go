package catalog

import (
	"errors"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

func WriteCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(rows, w)
}

func ReadCSV(r io.Reader) (rows []Row, err error) {
	err = gocsv.Unmarshal(r, &rows)
	return rows, err
}

// Loads a catalog previously dumped with WriteCSV
func ReadCSVFile(filename string) ([]Row, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// Dumps the catalog to filename, overwriting it if it exists
func WriteCSVFile(filename string, rows []Row) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = WriteCSV(file, rows)
	if closeErr := file.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}
