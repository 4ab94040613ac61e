// writer.go
package file

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// ensureDir 确保目录存在
func ensureDir(dirPath string) error {
	if info, err := os.Stat(dirPath); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", dirPath)
	}
	return os.MkdirAll(dirPath, 0755)
}

// WriteCSV writes a DataFrame with a header row and no index column,
// creating parent directories as needed. Missing values become empty
// cells rather than the literal "NaN".
func WriteCSV(df dataframe.DataFrame, filePath string) error {
	if err := ensureDir(filepath.Dir(filePath)); err != nil {
		return err
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(df.Names()); err != nil {
		return err
	}

	types := df.Types()
	rec := make([]string, df.Ncol())
	for i := 0; i < df.Nrow(); i++ {
		for j := 0; j < df.Ncol(); j++ {
			elem := df.Elem(i, j)
			switch {
			case elem.IsNA():
				rec[j] = ""
			case types[j] == series.Float:
				rec[j] = strconv.FormatFloat(elem.Float(), 'f', -1, 64)
			default:
				rec[j] = elem.String()
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ExportXLSX saves a DataFrame as a single-sheet Excel workbook.
func ExportXLSX(df dataframe.DataFrame, filePath string) error {
	if err := ensureDir(filepath.Dir(filePath)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"

	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			val := df.Col(colName).Val(rowIdx)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save xlsx file: %w", err)
	}
	return nil
}
