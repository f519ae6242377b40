package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Gin_postgres_redis_lab_inventory/inventory"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repo) FindGroupByID(ctx context.Context, id string) (*models.ComponentGroup, error) {
	var g models.ComponentGroup
	if err := r.DB.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *Repo) ListGroups(ctx context.Context) ([]models.ComponentGroup, error) {
	var gs []models.ComponentGroup
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&gs).Error
	return gs, err
}

// ListGroupsForLab returns a lab's own groups plus the global ones.
func (r *Repo) ListGroupsForLab(ctx context.Context, labID string) ([]models.ComponentGroup, error) {
	var gs []models.ComponentGroup
	err := r.DB.WithContext(ctx).
		Where("lab_id = ? OR lab_id IS NULL", labID).
		Order("created_at DESC").
		Find(&gs).Error
	return gs, err
}

// CreateGroup stores an explicitly created group. The name is canonicalized
// and checked for a case-insensitive duplicate inside the same lab scope.
func (r *Repo) CreateGroup(ctx context.Context, g *models.ComponentGroup) error {
	g.Name = inventory.TitleCase(g.Name)
	if g.Color == "" {
		g.Color = models.DefaultGroupColor
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	scope := r.DB.WithContext(ctx).Model(&models.ComponentGroup{}).
		Where("LOWER(name) = ?", inventory.NormalizeKey(g.Name))
	if g.LabID != nil {
		scope = scope.Where("lab_id = ?", *g.LabID)
	} else {
		scope = scope.Where("lab_id IS NULL")
	}
	var n int64
	if err := scope.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("group %q %w in this lab", g.Name, ErrDuplicate)
	}
	return r.DB.WithContext(ctx).Create(g).Error
}

func (r *Repo) UpdateGroup(ctx context.Context, id string, fields map[string]interface{}) error {
	if name, ok := fields["name"].(string); ok {
		fields["name"] = inventory.TitleCase(name)
	}
	res := r.DB.WithContext(ctx).Model(&models.ComponentGroup{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	// 分组改名时，组件上的冗余名称一并改
	if name, ok := fields["name"].(string); ok {
		return r.DB.WithContext(ctx).Model(&models.Component{}).
			Where("group_id = ?", id).
			Update("group_name", name).Error
	}
	return nil
}

// ErrGroupInUse carries the number of components still attached.
var ErrGroupInUse = errors.New("cannot delete group")

// DeleteGroup removes a group, refusing while components still reference it.
func (r *Repo) DeleteGroup(ctx context.Context, id string) error {
	var inUse int64
	if err := r.DB.WithContext(ctx).Model(&models.Component{}).
		Where("group_id = ?", id).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("%w, %d components are using this group", ErrGroupInUse, inUse)
	}
	res := r.DB.WithContext(ctx).Delete(&models.ComponentGroup{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// ResolveGroup finds the group with the given free-text name inside the
// lab's scope, or auto-creates it (default color, generated description,
// auto_created flag). The bool reports whether a create happened so batch
// callers can extend their in-memory view.
func (r *Repo) ResolveGroup(ctx context.Context, name string, lab *models.Lab) (*models.ComponentGroup, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, nil
	}

	var g models.ComponentGroup
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ? AND lab_id = ?", inventory.NormalizeKey(name), lab.ID).
		First(&g).Error
	if err == nil {
		return &g, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	g = models.ComponentGroup{
		ID:          uuid.NewString(),
		Name:        inventory.TitleCase(name),
		Description: fmt.Sprintf("Auto-created group for %s", lab.Name),
		Color:       models.DefaultGroupColor,
		LabID:       &lab.ID,
		LabName:     lab.Name,
		AutoCreated: true,
	}
	if err := r.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, false, err
	}
	return &g, true, nil
}
