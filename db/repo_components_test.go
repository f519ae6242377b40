package db

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_lab_inventory/models"
)

func TestCreateComponentAssignsUIDAndStatus(t *testing.T) {
	r := testRepo(t)
	seedLab(t, r, "LAB-003", "Automation Hub")

	comp, err := r.CreateComponent(context.Background(), adminActor(), CreateComponentInput{
		Name:            "  Proximity Sensor ",
		Category:        "sensors",
		LabName:         "Automation Hub",
		InitialQuantity: 20,
		CurrentQuantity: 7,
	})
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if comp.UID != "COML3-001" {
		t.Errorf("uid = %q, want COML3-001", comp.UID)
	}
	if comp.Name != "Proximity Sensor" {
		t.Errorf("name = %q, want trimmed", comp.Name)
	}
	if comp.Category != "Sensors" {
		t.Errorf("category = %q, want title-cased Sensors", comp.Category)
	}
	if comp.Status != models.StatusLowStock {
		t.Errorf("status = %q, want low_stock for quantity 7", comp.Status)
	}

	// 第二个组件接着排号
	next, err := r.CreateComponent(context.Background(), adminActor(), CreateComponentInput{
		Name: "Relay Module", Category: "Actuators", LabName: "Automation Hub",
		InitialQuantity: 10, CurrentQuantity: 10,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if next.UID != "COML3-002" {
		t.Errorf("second uid = %q, want COML3-002", next.UID)
	}
}

func TestCreateComponentReusesStoredCategorySpelling(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	seedComponent(t, r, lab, "Proximity Sensor", 5, 5) // stores "Sensors"

	comp, err := r.CreateComponent(context.Background(), adminActor(), CreateComponentInput{
		Name: "PIR Sensor", Category: "SENSORS", LabName: "Automation Hub",
		InitialQuantity: 5, CurrentQuantity: 5,
	})
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if comp.Category != "Sensors" {
		t.Errorf("category = %q, want existing spelling Sensors", comp.Category)
	}
}

func TestCreateComponentTrainerUsesOwnLab(t *testing.T) {
	r := testRepo(t)
	labA := seedLab(t, r, "LAB-001", "Automation Hub")
	seedLab(t, r, "LAB-002", "Electronics Lab")

	comp, err := r.CreateComponent(context.Background(), trainerActor(labA), CreateComponentInput{
		Name: "Servo", Category: "Actuators",
		LabName:         "Electronics Lab", // trainer 指定别的 lab 无效
		InitialQuantity: 5, CurrentQuantity: 5,
	})
	if err != nil {
		t.Fatalf("CreateComponent: %v", err)
	}
	if comp.LabID != labA.ID || comp.Lab != "Automation Hub" {
		t.Errorf("component landed in %q, want trainer's lab", comp.Lab)
	}
}

func TestCreateComponentRejectsCrossLabGroup(t *testing.T) {
	r := testRepo(t)
	labA := seedLab(t, r, "LAB-001", "Automation Hub")
	labB := seedLab(t, r, "LAB-002", "Electronics Lab")

	g := &models.ComponentGroup{Name: "Power", LabID: &labB.ID, LabName: labB.Name}
	if err := r.CreateGroup(context.Background(), g); err != nil {
		t.Fatalf("create group: %v", err)
	}

	_, err := r.CreateComponent(context.Background(), trainerActor(labA), CreateComponentInput{
		Name: "PSU", Category: "Power", GroupID: g.ID,
		InitialQuantity: 5, CurrentQuantity: 5,
	})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestUpdateComponentRederivesStatus(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	comp := seedComponent(t, r, lab, "Servo", 20, 20)

	if err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"current_quantity": 0}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := reloadComponent(t, r, comp.ID); got.Status != models.StatusOutOfStock {
		t.Errorf("status = %q, want out_of_stock", got.Status)
	}

	if err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"current_quantity": 15}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := reloadComponent(t, r, comp.ID); got.Status != models.StatusAvailable {
		t.Errorf("status = %q, want available", got.Status)
	}
}

func TestUpdateComponentClearsGroup(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	comp := seedComponent(t, r, lab, "Servo", 20, 20)

	g, created, err := r.ResolveGroup(context.Background(), "Motion", lab)
	if err != nil || !created {
		t.Fatalf("resolve group: %v created=%v", err, created)
	}
	if err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"group_id": g.ID}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if got := reloadComponent(t, r, comp.ID); got.GroupID == nil || got.GroupName != "Motion" {
		t.Fatalf("group not attached: %+v", got)
	}

	if err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"group_id": ""}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := reloadComponent(t, r, comp.ID); got.GroupID != nil || got.GroupName != "" {
		t.Errorf("group not cleared: %+v", got)
	}
}

func TestUpdateComponentBoundsQuantityByInitial(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	comp := seedComponent(t, r, lab, "Servo", 20, 12)

	err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"current_quantity": 50})
	if !errors.Is(err, ErrExceedsInitialStock) {
		t.Fatalf("err = %v, want ErrExceedsInitialStock", err)
	}
	if got := reloadComponent(t, r, comp.ID); got.CurrentQuantity != 12 {
		t.Errorf("stock = %d, want 12 untouched", got.CurrentQuantity)
	}

	// initial 一起抬高就放行
	if err := r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"initial_quantity": 60, "current_quantity": 50}); err != nil {
		t.Fatalf("raise both: %v", err)
	}
	got := reloadComponent(t, r, comp.ID)
	if got.InitialQuantity != 60 || got.CurrentQuantity != 50 {
		t.Errorf("quantities = %d/%d, want 60/50", got.InitialQuantity, got.CurrentQuantity)
	}

	// 只降 initial 把现库存甩在上面也不行
	err = r.UpdateComponent(context.Background(), adminActor(), comp.ID,
		map[string]interface{}{"initial_quantity": 30})
	if !errors.Is(err, ErrExceedsInitialStock) {
		t.Fatalf("lower initial below stock: err = %v, want ErrExceedsInitialStock", err)
	}
}

func TestComponentTrainerScope(t *testing.T) {
	r := testRepo(t)
	labA := seedLab(t, r, "LAB-001", "Automation Hub")
	labB := seedLab(t, r, "LAB-002", "Electronics Lab")
	comp := seedComponent(t, r, labA, "Servo", 20, 20)

	other := trainerActor(labB)
	err := r.UpdateComponent(context.Background(), other, comp.ID,
		map[string]interface{}{"name": "Hijacked"})
	if !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("cross-lab update: err = %v, want ErrComponentNotFound", err)
	}
	if err := r.DeleteComponent(context.Background(), other, comp.ID); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("cross-lab delete: err = %v, want ErrComponentNotFound", err)
	}
}

func TestListComponentsPaged(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	seedComponent(t, r, lab, "Proximity Sensor", 5, 5)
	seedComponent(t, r, lab, "Relay Module", 5, 5)
	seedComponent(t, r, lab, "Stepper Motor", 5, 5)

	page, err := r.ListComponentsPaged(context.Background(), ComponentsQuery{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("paged: %v", err)
	}
	if page.Total != 3 {
		t.Errorf("total = %d, want 3", page.Total)
	}
	if len(page.Components) != 2 {
		t.Errorf("page size = %d, want 2", len(page.Components))
	}

	filtered, err := r.ListComponentsPaged(context.Background(), ComponentsQuery{Keyword: "relay", Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("filtered: %v", err)
	}
	if filtered.Total != 1 || filtered.Components[0].Name != "Relay Module" {
		t.Errorf("keyword filter got %d results", filtered.Total)
	}
}
