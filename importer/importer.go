// Package importer turns uploaded CSV/XLSX files into import rows and
// renders component exports. It is plumbing around the import loop in db;
// nothing here touches the database.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"Gin_postgres_redis_lab_inventory/db"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{"name", "category", "lab", "initial_quantity", "current_quantity"}

// OptionalColumns are picked up when present.
var OptionalColumns = []string{"group", "uid"}

var ErrUnsupportedFile = errors.New("invalid file type, only CSV, XLSX, and XLS files are allowed")

// SupportedExt reports whether the upload's extension is one we parse.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// Parse dispatches on the file extension.
func Parse(filename string, r io.Reader) ([]db.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xls":
		return ParseXLSX(r)
	default:
		return nil, ErrUnsupportedFile
	}
}

// ParseCSV reads a header row plus data rows.
func ParseCSV(r io.Reader) ([]db.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// 行长不强制一致，缺列按空处理
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsFromRecords(records)
}

// ParseXLSX reads the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]db.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsFromRecords(records)
}

func rowsFromRecords(records [][]string) ([]db.ImportRow, error) {
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	cell := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	rows := make([]db.ImportRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, db.ImportRow{
			Name:            cell(rec, "name"),
			Category:        cell(rec, "category"),
			Lab:             cell(rec, "lab"),
			Group:           cell(rec, "group"),
			UID:             cell(rec, "uid"),
			InitialQuantity: cell(rec, "initial_quantity"),
			CurrentQuantity: cell(rec, "current_quantity"),
		})
	}
	return rows, nil
}
