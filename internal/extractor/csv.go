package extractor

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// parseCSV reads every record it can. Malformed records are logged and
// skipped; blank input yields no rows.
func (e *Extractor) parseCSV(text string) [][]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				e.logger.Debug("skipping csv record", "line", perr.Line, "error", perr.Err)
				continue
			}
			e.logger.Debug("csv read stopped", "error", err)
			break
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if c != "" {
			return false
		}
	}
	return true
}
