package tabler

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV loads a CSV document into memory. The first record names the
// fields. comma sets the field delimiter; zero means a comma.
func ReadCSV(r io.Reader, comma rune) (SliceSource, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return SliceSource{}, nil
	}
	if err != nil {
		return SliceSource{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return SliceSource{}, fmt.Errorf("failed to read csv record %d: %w", len(rows)+1, err)
		}
		values := make([]any, len(record))
		for i, v := range record {
			values[i] = v
		}
		rows = append(rows, RecordOf(header, values))
	}
	return SliceSource{rows: rows}, nil
}
