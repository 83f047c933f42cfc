// Package importer reads internship listings from Excel workbooks.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers, matched case-insensitively
const (
	ColTitle        = "title"
	ColCompanyName  = "company name"
	ColDescription  = "description"
	ColRequirements = "requirements"
	ColLocation     = "location"
	ColDuration     = "duration"
	ColType         = "type"
	ColStipend      = "stipend"
	ColSkills       = "skills"
	ColMajor        = "major"
)

// ErrMissingTitleColumn is returned when the header row has no Title column
var ErrMissingTitleColumn = errors.New("workbook header row has no Title column")

// Row is one internship read from the sheet
type Row struct {
	Line         int
	Title        string
	CompanyName  string
	Description  string
	Requirements string
	Location     string
	Duration     string
	Type         string
	Stipend      string
	Skills       []string
	Major        string
}

// RowError describes a row that could not be read
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// ParseInternships reads the first sheet of an .xlsx workbook.
// The first row holds headers; blank rows are ignored and rows without a
// title come back as RowErrors.
func ParseInternships(r io.Reader) ([]Row, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrMissingTitleColumn
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := columns[ColTitle]; !ok {
		return nil, nil, ErrMissingTitleColumn
	}

	var parsed []Row
	var rowErrs []RowError
	for i, cells := range rows[1:] {
		line := i + 2
		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[idx])
		}

		if isBlank(cells) {
			continue
		}

		row := Row{
			Line:         line,
			Title:        cell(ColTitle),
			CompanyName:  cell(ColCompanyName),
			Description:  cell(ColDescription),
			Requirements: cell(ColRequirements),
			Location:     cell(ColLocation),
			Duration:     cell(ColDuration),
			Type:         cell(ColType),
			Stipend:      cell(ColStipend),
			Skills:       SplitSkills(cell(ColSkills)),
			Major:        cell(ColMajor),
		}
		if row.Title == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "title is required"})
			continue
		}
		parsed = append(parsed, row)
	}
	return parsed, rowErrs, nil
}

// SplitSkills splits a comma or semicolon separated skills cell
func SplitSkills(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
