// reader.go
package file

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadCSV reads a raw table, dropping skipRows preamble lines before the
// header. World Bank exports carry a 4-line metadata preamble and often a
// UTF-8 BOM, so the file is decoded through a BOM-stripping transformer
// first. Rows may have varying field counts; the caller deals with that.
func ReadCSV(filePath string, skipRows int) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}

	rest, err := skipLines(data, skipRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	r := csv.NewReader(bytes.NewReader(rest))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return records, nil
}

// skipLines drops n physical lines. Preamble lines are counted like
// pandas' skiprows counts them, blank lines included.
func skipLines(data []byte, n int) ([]byte, error) {
	for i := 0; i < n; i++ {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return nil, fmt.Errorf("file shorter than the %d-row preamble", n)
		}
		data = data[idx+1:]
	}
	return data, nil
}

// ReadXLSX reads the same table shape out of an Excel export. The "Data"
// sheet is preferred when present, otherwise the first sheet is used.
func ReadXLSX(filePath string, skipRows int) ([][]string, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("xlsx open file failed: %w", err)
	}

	if len(xlFile.Sheets) == 0 {
		return nil, fmt.Errorf("no worksheets in %s", filePath)
	}
	sheet, ok := xlFile.Sheet["Data"]
	if !ok {
		sheet = xlFile.Sheets[0]
	}

	if len(sheet.Rows) <= skipRows {
		return nil, fmt.Errorf("%s: sheet shorter than the %d-row preamble", filePath, skipRows)
	}

	records := make([][]string, 0, len(sheet.Rows)-skipRows)
	for _, row := range sheet.Rows[skipRows:] {
		rec := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			rec[i] = cell.Value
		}
		records = append(records, rec)
	}
	return records, nil
}
