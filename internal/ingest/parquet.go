package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/scattaneo/pharmapartner/internal/model"
)

// loadParquet parses a columnar extract. Columns map onto schema columns by
// their leaf field names; non-string cells are rendered to their text form
// before the shared row parsing.
func (l *Loader) loadParquet(data []byte) (*model.Table, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	headers := make([]string, len(fields))
	for i, field := range fields {
		headers[i] = field.Name()
	}

	var tableRows [][]string
	for _, rowGroup := range pf.RowGroups() {
		rows := rowGroup.Rows()
		buf := make([]parquet.Row, 256)
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				cells := make([]string, len(headers))
				for _, value := range row {
					if col := value.Column(); col >= 0 && col < len(cells) {
						cells[col] = parquetCell(value)
					}
				}
				tableRows = append(tableRows, cells)
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				_ = rows.Close()
				return nil, fmt.Errorf("failed to read parquet rows: %w", readErr)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("failed to close parquet row reader: %w", err)
		}
	}

	return l.buildTable(headers, tableRows)
}

func parquetCell(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return v.String()
	}
}
