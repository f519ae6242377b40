package db

import (
	"context"
	"testing"

	"Gin_postgres_redis_lab_inventory/inventory"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(gdb)
}

func seedLab(t *testing.T, r *Repo, displayID, name string) *models.Lab {
	t.Helper()
	lab := &models.Lab{
		ID:     uuid.NewString(),
		LabID:  displayID,
		Name:   name,
		Status: models.LabStatusActive,
	}
	if err := r.CreateLab(context.Background(), lab); err != nil {
		t.Fatalf("seed lab %s: %v", name, err)
	}
	return lab
}

func seedComponent(t *testing.T, r *Repo, lab *models.Lab, name string, initial, current int) *models.Component {
	t.Helper()
	comp := &models.Component{
		ID:              uuid.NewString(),
		UID:             inventory.GenerateUID(lab, map[string]struct{}{}),
		Name:            name,
		Category:        "Sensors",
		Lab:             lab.Name,
		LabID:           lab.ID,
		InitialQuantity: initial,
		CurrentQuantity: current,
		Status:          inventory.StatusForQuantity(current),
	}
	// seed 数据不同名，UID 直接带上组件名保证唯一
	comp.UID = comp.UID + "-" + name
	if err := r.DB.Create(comp).Error; err != nil {
		t.Fatalf("seed component %s: %v", name, err)
	}
	return comp
}

func adminActor() Actor {
	return Actor{UserID: uuid.NewString(), Role: models.RoleAdmin}
}

func trainerActor(lab *models.Lab) Actor {
	return Actor{
		UserID:  uuid.NewString(),
		Role:    models.RoleTrainer,
		LabID:   lab.ID,
		LabName: lab.Name,
	}
}

func reloadComponent(t *testing.T, r *Repo, id string) *models.Component {
	t.Helper()
	comp, err := r.FindComponentByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reload component: %v", err)
	}
	return comp
}

func reloadTransaction(t *testing.T, r *Repo, id string) *models.Transaction {
	t.Helper()
	tx, err := r.FindTransactionByID(context.Background(), adminActor(), id)
	if err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	return tx
}

// checkSplit asserts the bookkeeping identity every mutation must preserve.
func checkSplit(t *testing.T, tx *models.Transaction) {
	t.Helper()
	if tx.QuantityReturned+tx.PendingQuantity != tx.QuantityIssued {
		t.Errorf("returned %d + pending %d != issued %d",
			tx.QuantityReturned, tx.PendingQuantity, tx.QuantityIssued)
	}
}
