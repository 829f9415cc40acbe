package tabular

import (
	"strings"
)

const byteOrderMark = "\ufeff"

// Record maps a header name to the trimmed raw value of one data row.
type Record map[string]string

// Get returns the value stored under key, or an empty string when the column is absent.
func (r Record) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// Parse reads comma separated text with double-quote escaping into header-keyed records.
//
// The first row is the header. Rows shorter than the header yield empty values for
// the unmatched headers and extra fields are ignored; row lengths are never validated.
// Carriage returns are dropped everywhere so CRLF input behaves like LF input.
func Parse(text string) []Record {
	rows := splitRows(text)
	if len(rows) == 0 {
		return []Record{}
	}

	headers := make([]string, len(rows[0]))
	for idx, name := range rows[0] {
		headers[idx] = strings.TrimSpace(name)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimSpace(strings.TrimPrefix(headers[0], byteOrderMark))
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(headers))
		for idx, name := range headers {
			value := ""
			if idx < len(row) {
				value = strings.TrimSpace(row[idx])
			}
			rec[name] = value
		}
		out = append(out, rec)
	}

	return out
}

// splitRows scans bytes. Every delimiter is ASCII, so multi-byte sequences, valid
// or not, are copied through untouched.
func splitRows(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cur      strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '\r' {
			continue
		}

		if inQuotes {
			switch {
			case ch == '"' && i+1 < len(text) && text[i+1] == '"':
				cur.WriteByte('"')
				i++
			case ch == '"':
				inQuotes = false
			default:
				cur.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cur.String())
			cur.Reset()
		case '\n':
			row = append(row, cur.String())
			rows = append(rows, row)
			row = nil
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	row = append(row, cur.String())
	rows = append(rows, row)

	// A trailing newline leaves one empty field behind; that is not a data row.
	last := rows[len(rows)-1]
	if len(last) == 1 && strings.TrimSpace(last[0]) == "" {
		rows = rows[:len(rows)-1]
	}

	return rows
}
