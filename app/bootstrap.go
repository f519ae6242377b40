// app/bootstrap.go
package app

import (
	"context"
	"log"

	"Gin_postgres_redis_lab_inventory/db"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin seeds the first admin account on an empty user table
// so a fresh deployment can log in at all. Does nothing once any user
// exists or when no bootstrap password is configured.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapAdminPass == "" {
		return
	}
	n, err := repo.CountUsers(ctx)
	if err != nil {
		log.Printf("bootstrap admin: count users: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap admin: hash password: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.BootstrapAdminUser,
		Email:        cfg.BootstrapAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap admin: create: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created first admin %q", u.Username)
}
