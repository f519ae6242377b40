package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"Gin_postgres_redis_lab_inventory/models"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"uid", "name", "category", "lab", "group", "initial_quantity", "current_quantity", "status"}

func exportRecord(c models.Component) []string {
	return []string{
		c.UID,
		c.Name,
		c.Category,
		c.Lab,
		c.GroupName,
		strconv.Itoa(c.InitialQuantity),
		strconv.Itoa(c.CurrentQuantity),
		c.Status,
	}
}

// WriteCSV streams components as a CSV export, import-compatible headers.
func WriteCSV(w io.Writer, components []models.Component) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range components {
		if err := cw.Write(exportRecord(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes components as a one-sheet workbook.
func WriteXLSX(w io.Writer, components []models.Component) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Components"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for row, c := range components {
		for col, v := range exportRecord(c) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
