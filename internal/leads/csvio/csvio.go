// Package csvio reads lead uploads and writes scored result tables.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/platform/sanitize"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ResultHeader is the column order of exported results.
var ResultHeader = []string{"name", "role", "company", "intent", "score", "reasoning"}

// ParseLeads reads a CSV with a header row. Header names are matched
// case-insensitively after trimming; unknown columns are ignored and missing
// ones leave the field empty. An input with no header yields no leads.
func ParseLeads(r io.Reader) ([]domain.Lead, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	leads := []domain.Lead{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(leads)+2, err)
		}
		leads = append(leads, domain.Lead{
			Name:        field(record, "name"),
			Role:        field(record, "role"),
			Company:     field(record, "company"),
			Industry:    field(record, "industry"),
			Location:    field(record, "location"),
			LinkedInBio: field(record, "linkedin_bio"),
		})
	}
	return leads, nil
}

// WriteResults writes results as CSV with ResultHeader. Free-text cells
// that a spreadsheet would read as a formula are quoted.
func WriteResults(w io.Writer, results []domain.ScoreResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			sanitize.SpreadsheetCell(r.Name),
			sanitize.SpreadsheetCell(r.Role),
			sanitize.SpreadsheetCell(r.Company),
			string(r.Intent),
			strconv.Itoa(r.Score),
			sanitize.SpreadsheetCell(r.Reasoning),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
