package roster

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads names from a comma- or semicolon-separated table.
func (o Options) ReadCSV(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return o.names(records)
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas, as Excel writes in Ukrainian locales.
func sniffDelimiter(data []byte) rune {
	commas, semis := 0, 0
	for _, b := range data {
		if b == '\n' {
			break
		}
		switch b {
		case ',':
			commas++
		case ';':
			semis++
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}
