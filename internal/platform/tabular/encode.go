package tabular

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Encode writes header and records back out in the quoting convention Parse accepts.
// Values missing from a record are written as empty fields.
func Encode(header []string, records []Record) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for idx, rec := range records {
		for col, name := range header {
			row[col] = rec.Get(name)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row %d: %w", idx+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush rows: %w", err)
	}

	return buf.String(), nil
}
