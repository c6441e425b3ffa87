// Package roster reads personnel name lists from spreadsheets, CSV and plain
// text, and normalises each entry to "Surname Firstname Patronymic".
package roster

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNoNames is returned when a roster yields no usable names.
var ErrNoNames = errors.New("roster contains no names")

// ErrUnsupportedFormat is returned for roster files of unknown type.
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// Options select where names are read from in tabular rosters.
type Options struct {
	// Sheet is the zero-based worksheet index for XLSX rosters.
	Sheet int
	// Column is the zero-based name column; -1 detects it from a header such
	// as "ПІБ" or, failing that, picks the column with the most name-like cells.
	Column int
}

// DefaultOptions reads the first sheet and detects the name column.
var DefaultOptions = Options{Sheet: 0, Column: -1}

// Read dispatches on the file extension and returns the cleaned names.
func Read(r io.Reader, filename string) ([]string, error) {
	return DefaultOptions.Read(r, filename)
}

// Read dispatches on the file extension and returns the cleaned names.
func (o Options) Read(r io.Reader, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return o.ReadXLSX(r)
	case ".csv":
		return o.ReadCSV(r)
	case ".txt", "":
		return ReadText(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// FromStrings cleans names supplied directly, one per element or one per line.
func FromStrings(raw []string) ([]string, error) {
	var lines []string
	for _, r := range raw {
		lines = append(lines, strings.Split(r, "\n")...)
	}
	return finish(lines)
}

// finish cleans raw entries, drops blanks, header cells and duplicates.
func finish(raw []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, r := range raw {
		name := CleanName(r)
		if name == "" || isHeader(name) {
			continue
		}
		k := strings.ToLower(name)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, ErrNoNames
	}
	return out, nil
}

var headerWords = []string{"піб", "п.і.б", "п. і. б", "прізвище", "прізвище, ім'я, по батькові", "прізвище ім'я по батькові"}

func isHeader(s string) bool {
	norm := strings.Trim(strings.ToLower(s), " .:")
	for _, h := range headerWords {
		if norm == strings.Trim(h, " .:") {
			return true
		}
	}
	return strings.HasPrefix(norm, "прізвище ") || strings.HasPrefix(norm, "прізвище,")
}

// pickColumn finds the header row and name column of a table. It returns the
// first data row and the column index, or -1 when no column qualifies.
func pickColumn(rows [][]string) (start, col int) {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for r := 0; r < limit; r++ {
		for c, cell := range rows[r] {
			if isHeader(CleanName(cell)) {
				return r + 1, c
			}
		}
	}

	best, bestCount := -1, 0
	counts := make(map[int]int)
	for _, row := range rows {
		for c, cell := range row {
			if looksLikeName(cell) {
				counts[c]++
			}
		}
	}
	for c, n := range counts {
		if n > bestCount || (n == bestCount && c < best) {
			best, bestCount = c, n
		}
	}
	return 0, best
}

// column extracts column col of rows starting at start.
func column(rows [][]string, start, col int) []string {
	var out []string
	for _, row := range rows[start:] {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}

func (o Options) names(rows [][]string) ([]string, error) {
	start, col := 0, o.Column
	if col < 0 {
		start, col = pickColumn(rows)
		if col < 0 {
			return nil, ErrNoNames
		}
	}
	return finish(column(rows, start, col))
}
