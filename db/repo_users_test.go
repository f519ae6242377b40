package db

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_lab_inventory/models"

	"github.com/google/uuid"
)

func seedTrainer(t *testing.T, r *Repo, username string, lab *models.Lab) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Role:     models.RoleTrainer,
		LabID:    &lab.ID,
		LabName:  lab.Name,
	}
	if err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed trainer %s: %v", username, err)
	}
	return u
}

func TestFindUserByUsername(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	seedTrainer(t, r, "trainer1", lab)

	u, err := r.FindUserByUsername(context.Background(), "trainer1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u.LabName != "Automation Hub" || !u.IsTrainer() {
		t.Errorf("user = %+v", u)
	}

	if _, err := r.FindUserByUsername(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}

func TestTouchUserLogin(t *testing.T) {
	r := testRepo(t)
	lab := seedLab(t, r, "LAB-001", "Automation Hub")
	u := seedTrainer(t, r, "trainer1", lab)

	if err := r.TouchUserLogin(context.Background(), u.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := r.FindUserByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LoginCount != 1 || got.LastLoginAt == nil {
		t.Errorf("login count %d, last login %v", got.LoginCount, got.LastLoginAt)
	}
}

func TestListTrainersAndUpdate(t *testing.T) {
	r := testRepo(t)
	labA := seedLab(t, r, "LAB-001", "Automation Hub")
	labB := seedLab(t, r, "LAB-002", "Electronics Lab")
	u := seedTrainer(t, r, "trainer1", labA)
	seedTrainer(t, r, "trainer2", labB)

	// admin 不出现在 trainer 列表里
	admin := &models.User{
		ID: uuid.NewString(), Username: "boss",
		Email: "boss@example.com", Role: models.RoleAdmin,
	}
	if err := r.CreateUser(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	trainers, err := r.ListTrainers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trainers) != 2 {
		t.Fatalf("trainers = %d, want 2", len(trainers))
	}

	if err := r.UpdateTrainer(context.Background(), u.ID, map[string]interface{}{
		"lab_id": labB.ID, "lab_name": labB.Name,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := r.FindUserByID(context.Background(), u.ID)
	if got.LabName != "Electronics Lab" {
		t.Errorf("lab after move = %q", got.LabName)
	}

	if err := r.UpdateTrainer(context.Background(), "no-such-id", map[string]interface{}{
		"lab_name": "x",
	}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("update missing: err = %v, want ErrUserNotFound", err)
	}
}
