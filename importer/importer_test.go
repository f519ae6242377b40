package importer

import (
	"bytes"
	"strings"
	"testing"

	"Gin_postgres_redis_lab_inventory/models"
)

const sampleCSV = `name,category,lab,group,uid,initial_quantity,current_quantity
Proximity Sensor,Sensors,Automation Hub,Motion Sensing,,20,20
Relay Module,Actuators,Automation Hub,,COML1-005,10,8
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	first := rows[0]
	if first.Name != "Proximity Sensor" || first.Group != "Motion Sensing" || first.UID != "" {
		t.Errorf("first row = %+v", first)
	}
	if rows[1].UID != "COML1-005" || rows[1].CurrentQuantity != "8" {
		t.Errorf("second row = %+v", rows[1])
	}
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	csvData := "Name,CATEGORY,Lab,Initial_Quantity,Current_Quantity\nServo,Actuators,Automation Hub,5,5\n"
	rows, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Servo" {
		t.Errorf("rows = %+v", rows)
	}
	// 缺的可选列按空串处理
	if rows[0].Group != "" || rows[0].UID != "" {
		t.Errorf("optional columns = %q/%q, want empty", rows[0].Group, rows[0].UID)
	}
}

func TestParseCSVMissingRequiredColumns(t *testing.T) {
	csvData := "name,lab\nServo,Automation Hub\n"
	_, err := ParseCSV(strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required columns") ||
		!strings.Contains(err.Error(), "category") {
		t.Errorf("err = %v", err)
	}
}

func TestParseCSVShortRows(t *testing.T) {
	csvData := "name,category,lab,initial_quantity,current_quantity\nServo,Actuators\n"
	rows, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if rows[0].Lab != "" || rows[0].InitialQuantity != "" {
		t.Errorf("short row = %+v, want trailing cells empty", rows[0])
	}
}

func TestSupportedExt(t *testing.T) {
	for _, name := range []string{"parts.csv", "Parts.XLSX", "old.xls"} {
		if !SupportedExt(name) {
			t.Errorf("SupportedExt(%q) = false", name)
		}
	}
	for _, name := range []string{"parts.pdf", "parts", "parts.txt"} {
		if SupportedExt(name) {
			t.Errorf("SupportedExt(%q) = true", name)
		}
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse("parts.txt", strings.NewReader("x"))
	if err != ErrUnsupportedFile {
		t.Errorf("err = %v, want ErrUnsupportedFile", err)
	}
}

func TestExportXLSXRoundTrip(t *testing.T) {
	comps := []models.Component{
		{
			UID: "COML1-001", Name: "Proximity Sensor", Category: "Sensors",
			Lab: "Automation Hub", GroupName: "Motion Sensing",
			InitialQuantity: 20, CurrentQuantity: 12, Status: models.StatusAvailable,
		},
		{
			UID: "COML1-002", Name: "Relay Module", Category: "Actuators",
			Lab: "Automation Hub",
			InitialQuantity: 10, CurrentQuantity: 0, Status: models.StatusOutOfStock,
		},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, comps); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	rows, err := ParseXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseXLSX: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].UID != "COML1-001" || rows[0].Name != "Proximity Sensor" {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].CurrentQuantity != "0" {
		t.Errorf("second row quantity = %q, want 0", rows[1].CurrentQuantity)
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	comps := []models.Component{{
		UID: "COML1-001", Name: "Proximity Sensor", Category: "Sensors",
		Lab: "Automation Hub", InitialQuantity: 20, CurrentQuantity: 12,
		Status: models.StatusAvailable,
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, comps); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].UID != "COML1-001" || rows[0].InitialQuantity != "20" {
		t.Errorf("rows = %+v", rows)
	}
}
