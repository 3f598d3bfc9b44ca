package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV turns raw uploaded bytes into normalized creation requests.
//
// The input must be UTF-8, with an optional leading BOM. If the first
// record's first cell equals "name" (case-insensitive) it is treated as a
// header and dropped. Records whose cells are all blank are skipped.
// Cell 0 is the name, cell 1 the address, cell 2 the phone; missing cells
// yield empty values. Malformed cells never fail the parse; per-row
// problems surface later as validation outcomes, not here.
func ParseCSV(data []byte) ([]CreationRequest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("decode file: not valid UTF-8")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	if len(records) > 0 && len(records[0]) > 0 &&
		strings.EqualFold(strings.TrimSpace(records[0][0]), "name") {
		records = records[1:]
	}

	requests := make([]CreationRequest, 0, len(records))
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		requests = append(requests, CreationRequest{
			Name:    cell(record, 0),
			Address: cell(record, 1),
			Phone:   optionalCell(record, 2),
		})
	}
	return requests, nil
}

// cell returns the trimmed cell at position i, or "" when absent.
func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// optionalCell returns the trimmed cell as a pointer, nil when the cell is
// absent or blank so it serializes as JSON null downstream.
func optionalCell(record []string, i int) *string {
	v := cell(record, i)
	if v == "" {
		return nil
	}
	return &v
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
