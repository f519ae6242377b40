package db

import (
	"context"
	"strings"
	"testing"

	"Gin_postgres_redis_lab_inventory/models"
)

func importRowFor(lab, name string) ImportRow {
	return ImportRow{
		Name:            name,
		Category:        "sensors",
		Lab:             lab,
		InitialQuantity: "20",
		CurrentQuantity: "20",
	}
}

func TestImportComponentsRowFailuresAreIsolated(t *testing.T) {
	r := testRepo(t)
	seedLab(t, r, "LAB-001", "Automation Hub")

	rows := []ImportRow{
		importRowFor("Automation Hub", "Proximity Sensor"),
		importRowFor("Ghost Lab", "Relay Module"),
		importRowFor("Automation Hub", "Stepper Motor"),
	}
	res, err := r.ImportComponents(context.Background(), adminActor(), rows)
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}

	if res.ImportedCount != 2 {
		t.Errorf("imported = %d, want 2", res.ImportedCount)
	}
	if res.TotalRows != 3 {
		t.Errorf("total = %d, want 3", res.TotalRows)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Row 2: Lab 'Ghost Lab' not found" {
		t.Errorf("errors = %v", res.Errors)
	}

	comps, err := r.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("stored %d components, want 2", len(comps))
	}
}

func TestImportComponentsValidation(t *testing.T) {
	r := testRepo(t)
	seedLab(t, r, "LAB-001", "Automation Hub")

	bad := importRowFor("Automation Hub", "")
	missing := importRowFor("", "Relay Module")
	junkQty := importRowFor("Automation Hub", "Servo")
	junkQty.InitialQuantity = "lots"
	negQty := importRowFor("Automation Hub", "Motor")
	negQty.CurrentQuantity = "-3"

	res, err := r.ImportComponents(context.Background(), adminActor(),
		[]ImportRow{bad, missing, junkQty, negQty})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 0 {
		t.Errorf("imported = %d, want 0", res.ImportedCount)
	}
	want := []string{
		"Row 1: Missing required fields (name, category, or lab)",
		"Row 2: Missing required fields (name, category, or lab)",
		"Row 3: Invalid quantity values",
		"Row 4: Quantity values must be non-negative",
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("errors = %v", res.Errors)
	}
	for i, msg := range want {
		if res.Errors[i] != msg {
			t.Errorf("error[%d] = %q, want %q", i, res.Errors[i], msg)
		}
	}
}

func TestImportComponentsGeneratesDistinctUIDsWithinBatch(t *testing.T) {
	r := testRepo(t)
	seedLab(t, r, "LAB-003", "Automation Hub")

	res, err := r.ImportComponents(context.Background(), adminActor(), []ImportRow{
		importRowFor("Automation Hub", "Proximity Sensor"),
		importRowFor("Automation Hub", "Relay Module"),
	})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 2 {
		t.Fatalf("imported = %d, want 2, errors %v", res.ImportedCount, res.Errors)
	}

	uids := map[string]string{}
	comps, _ := r.ListComponents(context.Background())
	for _, c := range comps {
		uids[c.Name] = c.UID
	}
	if uids["Proximity Sensor"] != "COML3-001" {
		t.Errorf("first uid = %q, want COML3-001", uids["Proximity Sensor"])
	}
	if uids["Relay Module"] != "COML3-002" {
		t.Errorf("second uid = %q, want COML3-002", uids["Relay Module"])
	}
}

func TestImportComponentsRejectsDuplicateExplicitUID(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	existing := seedComponent(t, r, lab, "Proximity Sensor", 5, 5)

	row := importRowFor("Automation Hub", "Relay Module")
	row.UID = existing.UID

	res, err := r.ImportComponents(context.Background(), adminActor(), []ImportRow{row})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 0 {
		t.Errorf("imported = %d, want 0", res.ImportedCount)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "already exists") {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestImportComponentsAutoCreatesGroupOncePerBatch(t *testing.T) {
	r := testRepo(t)
	seedLab(t, r, "LAB-001", "Automation Hub")

	first := importRowFor("Automation Hub", "Proximity Sensor")
	first.Group = "motion sensing"
	second := importRowFor("Automation Hub", "PIR Sensor")
	second.Group = "Motion Sensing" // 大小写不同，仍是同一组

	res, err := r.ImportComponents(context.Background(), adminActor(), []ImportRow{first, second})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 2 {
		t.Fatalf("imported = %d, errors %v", res.ImportedCount, res.Errors)
	}

	groups, err := r.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups created = %d, want 1", len(groups))
	}
	g := groups[0]
	if g.Name != "Motion Sensing" {
		t.Errorf("group name = %q, want Motion Sensing", g.Name)
	}
	if !g.AutoCreated {
		t.Error("group not flagged auto-created")
	}
	if g.Color != models.DefaultGroupColor {
		t.Errorf("group color = %q, want default", g.Color)
	}

	comps, _ := r.ListComponents(context.Background())
	for _, c := range comps {
		if c.GroupID == nil || *c.GroupID != g.ID {
			t.Errorf("component %s not attached to group", c.Name)
		}
	}
}

func TestImportComponentsUpdatesExistingInPlace(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	existing := seedComponent(t, r, lab, "Proximity Sensor", 5, 5)

	row := importRowFor("Automation Hub", "Proximity Sensor")
	row.InitialQuantity = "50"
	row.CurrentQuantity = "50"

	res, err := r.ImportComponents(context.Background(), adminActor(), []ImportRow{row})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 1 {
		t.Errorf("imported = %d, want 1", res.ImportedCount)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Row 1: Component 'Proximity Sensor' updated (already existed)" {
		t.Errorf("errors = %v", res.Errors)
	}

	got := reloadComponent(t, r, existing.ID)
	if got.InitialQuantity != 50 || got.CurrentQuantity != 50 {
		t.Errorf("quantities = %d/%d, want 50/50", got.InitialQuantity, got.CurrentQuantity)
	}
	if got.Status != models.StatusAvailable {
		t.Errorf("status = %q, want available", got.Status)
	}

	comps, _ := r.ListComponents(context.Background())
	if len(comps) != 1 {
		t.Errorf("components = %d, want 1 (updated, not duplicated)", len(comps))
	}
}

func TestImportComponentsCanonicalizesCategorySpelling(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	seeded := seedComponent(t, r, lab, "Proximity Sensor", 5, 5) // category "Sensors"
	_ = seeded

	row := importRowFor("Automation Hub", "Relay Module")
	row.Category = "  SENSORS "

	res, err := r.ImportComponents(context.Background(), adminActor(), []ImportRow{row})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 1 {
		t.Fatalf("imported = %d, errors %v", res.ImportedCount, res.Errors)
	}

	comp, err := r.FindComponentByNameAndLab(context.Background(), "Relay Module", lab.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if comp.Category != "Sensors" {
		t.Errorf("category = %q, want stored spelling Sensors", comp.Category)
	}
}

func TestImportComponentsTrainerLabScope(t *testing.T) {
	r := testRepo(t)
	labA := seedLab(t, r, "LAB-001", "Automation Hub")
	seedLab(t, r, "LAB-002", "Electronics Lab")

	trainer := trainerActor(labA)
	res, err := r.ImportComponents(context.Background(), trainer, []ImportRow{
		importRowFor("Automation Hub", "Proximity Sensor"),
		importRowFor("Electronics Lab", "Relay Module"),
	})
	if err != nil {
		t.Fatalf("ImportComponents: %v", err)
	}
	if res.ImportedCount != 1 {
		t.Errorf("imported = %d, want 1", res.ImportedCount)
	}
	if len(res.Errors) != 1 ||
		res.Errors[0] != "Row 2: You can only import components for your assigned lab 'Automation Hub'" {
		t.Errorf("errors = %v", res.Errors)
	}
}
