package table

//
// csv.go - reading and writing delimited files.
//
// The audio feature extractor emits semicolon-separated values, hence
// the explicit separator argument everywhere.
//

import (
	"encoding/csv"
	"os"

	"github.com/mhealthx/extract-cli/internal/fsx"
)

// ReadCSV reads a delimited file into a [*Table]. The first record
// is the header.
func ReadCSV(path string, sep rune) (*Table, error) {
	filep, err := fsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer filep.Close()
	reader := csv.NewReader(filep)
	reader.Comma = sep
	reader.FieldsPerRecord = -1 // the extractor output is not always rectangular
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return &Table{}, nil
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteCSV writes the table to a delimited file, header first. The
// file is created or truncated.
func (t *Table) WriteCSV(path string, sep rune) error {
	filep, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(filep)
	writer.Comma = sep
	if err := writer.Write(t.Header); err != nil {
		filep.Close()
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			filep.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		filep.Close()
		return err
	}
	return filep.Close()
}

// WriteRowCSV writes a single row to a delimited file, header first.
func (r *Row) WriteRowCSV(path string, sep rune) error {
	t := &Table{Header: r.Header, Rows: [][]string{r.Values}}
	return t.WriteCSV(path, sep)
}

// AppendRowToFile appends a row to the feature table at path. When the
// file does not exist, it is created and the header is written first;
// when it exists, only the values row is appended. There is no check
// that the existing header matches: appending is best effort, exactly
// like the rest of the pipeline.
func AppendRowToFile(path string, row *Row, sep rune) error {
	_, statErr := os.Stat(path)
	filep, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(filep)
	writer.Comma = sep
	if statErr != nil {
		// the file did not exist: write the header first
		if err := writer.Write(row.Header); err != nil {
			filep.Close()
			return err
		}
	}
	if err := writer.Write(row.Values); err != nil {
		filep.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		filep.Close()
		return err
	}
	return filep.Close()
}
