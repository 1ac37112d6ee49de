package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/scattaneo/pharmapartner/internal/model"
)

// loadCSV parses a comma-delimited extract. The first row is the header.
func (l *Loader) loadCSV(data []byte) (*model.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are padded by buildTable

	headers, err := reader.Read()
	if err == io.EOF {
		return l.buildTable(nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return l.buildTable(headers, rows)
}
