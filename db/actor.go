package db

import "Gin_postgres_redis_lab_inventory/models"

// Actor is the role-scoped identity the routing layer resolved from the
// session. Trainers see and mutate only their own lab; admins everything.
type Actor struct {
	UserID  string
	Role    string
	LabID   string // 仅 trainer 有值
	LabName string
}

func (a Actor) IsAdmin() bool   { return a.Role == models.RoleAdmin }
func (a Actor) IsTrainer() bool { return a.Role == models.RoleTrainer }

// CanAccessLab reports whether the actor may touch data in the given lab.
func (a Actor) CanAccessLab(labID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.LabID != "" && a.LabID == labID
}
