package db

import (
	"context"
	"time"

	"Gin_postgres_redis_lab_inventory/inventory"
	"Gin_postgres_redis_lab_inventory/models"

	"gorm.io/gorm"
)

// OverdueAfter is how long an issue may stay open before it counts as
// overdue.
const OverdueAfter = 14 * 24 * time.Hour

type DashboardStats struct {
	LabName         string `json:"lab_name,omitempty"`
	TotalLabs       int64  `json:"total_labs,omitempty"`
	TotalComponents int64  `json:"total_components"`
	TotalTrainers   int64  `json:"total_trainers,omitempty"`
	IssuedToday     int64  `json:"issued_today"`
	LowStock        int64  `json:"low_stock"`
	OverdueCount    int64  `json:"overdue_count"`
	PendingReturns  int64  `json:"pending_returns"`
}

// GetDashboardStats counts the dashboard figures, scoped to the trainer's
// lab when the actor is not an admin.
func (r *Repo) GetDashboardStats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	overdueBefore := now.Add(-OverdueAfter)

	scoped := func(q *gorm.DB) *gorm.DB {
		if actor.IsTrainer() {
			return q.Where("lab_id = ?", actor.LabID)
		}
		return q
	}

	if actor.IsAdmin() {
		if err := r.DB.WithContext(ctx).Model(&models.Lab{}).Count(&stats.TotalLabs).Error; err != nil {
			return nil, err
		}
		if err := r.DB.WithContext(ctx).Model(&models.User{}).
			Where("role = ?", models.RoleTrainer).Count(&stats.TotalTrainers).Error; err != nil {
			return nil, err
		}
	} else {
		stats.LabName = actor.LabName
	}

	if err := scoped(r.DB.WithContext(ctx).Model(&models.Component{})).
		Count(&stats.TotalComponents).Error; err != nil {
		return nil, err
	}
	if err := scoped(r.DB.WithContext(ctx).Model(&models.Component{})).
		Where("current_quantity < ?", inventory.LowStockThreshold).
		Count(&stats.LowStock).Error; err != nil {
		return nil, err
	}
	if err := scoped(r.DB.WithContext(ctx).Model(&models.Transaction{})).
		Where("issue_date >= ?", todayStart).
		Count(&stats.IssuedToday).Error; err != nil {
		return nil, err
	}
	if err := scoped(r.DB.WithContext(ctx).Model(&models.Transaction{})).
		Where("issue_date < ? AND pending_quantity > 0", overdueBefore).
		Count(&stats.OverdueCount).Error; err != nil {
		return nil, err
	}
	if err := scoped(r.DB.WithContext(ctx).Model(&models.Transaction{})).
		Where("pending_quantity > 0").
		Count(&stats.PendingReturns).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ListOverdueTransactions returns open issues older than the overdue
// cutoff, oldest first.
func (r *Repo) ListOverdueTransactions(ctx context.Context, actor Actor) ([]models.Transaction, error) {
	q := r.DB.WithContext(ctx).Model(&models.Transaction{}).
		Where("issue_date < ? AND pending_quantity > 0", time.Now().UTC().Add(-OverdueAfter)).
		Order("issue_date ASC")
	if actor.IsTrainer() {
		q = q.Where("lab_id = ?", actor.LabID)
	}
	var ts []models.Transaction
	err := q.Find(&ts).Error
	return ts, err
}
