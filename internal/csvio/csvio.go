// Package csvio parses uploaded CSV files into column/row structures for
// tabular blocks and serializes those structures back to CSV.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Table is the parsed form of a CSV file. Rows are keyed by column name;
// missing cells are empty strings.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

const previewRows = 5

// Validation is the result of a structural check on an uploaded file.
type Validation struct {
	Columns       []string
	Preview       []map[string]string
	EstimatedRows int
}

// Import parses CSV bytes with the first row as header. Short records are
// padded with empty strings, mirroring the NaN-to-"" normalization of the
// import contract.
func Import(data []byte) (*Table, error) {
	return parse(data, -1)
}

// Export serializes rows back to CSV constrained to the given columns, with
// no index column. Row values outside the column set are dropped; missing
// values serialize as empty cells.
func Export(columns []string, rows []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("CSV export failed: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV export failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate parses the file twice: once stopping after a bounded preview and
// once in full for the row count. The double parse matches the observed
// behavior of the import pipeline and is preserved as-is.
func Validate(data []byte) (*Validation, error) {
	preview, err := parse(data, previewRows)
	if err != nil {
		return nil, err
	}
	full, err := parse(data, -1)
	if err != nil {
		return nil, err
	}
	return &Validation{
		Columns:       preview.Columns,
		Preview:       preview.Rows,
		EstimatedRows: len(full.Rows),
	}, nil
}

// parse reads up to limit data rows (all rows when limit < 0).
func parse(data []byte, limit int) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	columns, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no columns to parse from file")
		}
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}

	rows := []map[string]string{}
	for limit < 0 || len(rows) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
