package roster

import (
	"fmt"
	"io"
	"os"

	"github.com/tsawler/tabula/xlsx"
)

// ReadXLSX reads names from one worksheet of an Excel workbook.
func (o Options) ReadXLSX(r io.Reader) ([]string, error) {
	// tabula opens workbooks by path.
	tmp, err := os.CreateTemp("", "orderscan-roster-*.xlsx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	book, err := xlsx.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer book.Close()

	if o.Sheet < 0 || o.Sheet >= book.SheetCount() {
		return nil, fmt.Errorf("sheet %d out of range (workbook has %d)", o.Sheet, book.SheetCount())
	}
	sheet, err := book.Sheet(o.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %d: %w", o.Sheet, err)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		values := make([]string, len(row))
		for i := range row {
			if !row[i].IsEmpty() {
				values[i] = row[i].Value
			}
		}
		rows = append(rows, values)
	}
	return o.names(rows)
}
