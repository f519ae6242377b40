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

func (r *Repo) FindComponentByID(ctx context.Context, id string) (*models.Component, error) {
	var c models.Component
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindComponentByNameAndLab is the natural-key lookup transactions use.
func (r *Repo) FindComponentByNameAndLab(ctx context.Context, name, labID string) (*models.Component, error) {
	var c models.Component
	err := r.DB.WithContext(ctx).
		Where("name = ? AND lab_id = ?", strings.TrimSpace(name), labID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) ListComponents(ctx context.Context) ([]models.Component, error) {
	var cs []models.Component
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&cs).Error
	return cs, err
}

func (r *Repo) ListComponentsByLab(ctx context.Context, labID string) ([]models.Component, error) {
	var cs []models.Component
	err := r.DB.WithContext(ctx).Where("lab_id = ?", labID).Order("created_at DESC").Find(&cs).Error
	return cs, err
}

// ListCategories returns the distinct stored category spellings.
func (r *Repo) ListCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.DB.WithContext(ctx).Model(&models.Component{}).
		Distinct("category").Pluck("category", &cats).Error
	return cats, err
}

type ComponentsQuery struct {
	Keyword  string // 名称/UID 模糊匹配
	Category string
	LabID    string
	GroupID  string
	Page     int
	Size     int
}

type PagedComponents struct {
	Total      int64              `json:"total"`
	Components []models.Component `json:"components"`
}

func (r *Repo) ListComponentsPaged(ctx context.Context, q ComponentsQuery) (*PagedComponents, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Component{})
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(uid) LIKE ?", like, like)
	}
	if q.Category != "" {
		tx = tx.Where("LOWER(category) = ?", inventory.NormalizeKey(q.Category))
	}
	if q.LabID != "" {
		tx = tx.Where("lab_id = ?", q.LabID)
	}
	if q.GroupID != "" {
		tx = tx.Where("group_id = ?", q.GroupID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var cs []models.Component
	if err := tx.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&cs).Error; err != nil {
		return nil, err
	}
	return &PagedComponents{Total: total, Components: cs}, nil
}

type CreateComponentInput struct {
	Name            string
	Category        string
	LabName         string // admin 按名字选 lab；trainer 忽略，用自己绑定的
	GroupID         string
	InitialQuantity int
	CurrentQuantity int
}

// CreateComponent resolves the lab for the actor, canonicalizes the
// category against stored spellings, assigns a fresh UID and derives the
// stock status before inserting.
func (r *Repo) CreateComponent(ctx context.Context, actor Actor, in CreateComponentInput) (*models.Component, error) {
	var lab *models.Lab
	var err error
	if actor.IsTrainer() {
		lab, err = r.FindLabByID(ctx, actor.LabID)
	} else {
		lab, err = r.FindLabByName(ctx, in.LabName)
	}
	if err != nil {
		return nil, err
	}

	if in.InitialQuantity < 0 || in.CurrentQuantity < 0 {
		return nil, fmt.Errorf("%w: quantities must be non-negative", ErrNegativeQuantity)
	}

	cats, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]string, len(cats))
	for _, c := range cats {
		byKey[inventory.NormalizeKey(c)] = c
	}

	all, err := r.ListComponents(ctx)
	if err != nil {
		return nil, err
	}
	uid := inventory.GenerateUID(lab, inventory.UsedUIDs(all))

	comp := &models.Component{
		ID:              uuid.NewString(),
		UID:             uid,
		Name:            strings.TrimSpace(in.Name),
		Category:        inventory.CanonicalCategory(in.Category, byKey),
		Lab:             lab.Name,
		LabID:           lab.ID,
		InitialQuantity: in.InitialQuantity,
		CurrentQuantity: in.CurrentQuantity,
		Status:          inventory.StatusForQuantity(in.CurrentQuantity),
	}

	if in.GroupID != "" {
		g, err := r.FindGroupByID(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		// trainer 只能挂自己 lab 或全局的分组
		if actor.IsTrainer() && g.LabID != nil && *g.LabID != actor.LabID {
			return nil, fmt.Errorf("%w: group belongs to another lab", ErrAccessDenied)
		}
		comp.GroupID = &g.ID
		comp.GroupName = g.Name
	}

	if err := r.DB.WithContext(ctx).Create(comp).Error; err != nil {
		return nil, err
	}
	return comp, nil
}

// UpdateComponent patches a component. Changing current_quantity re-derives
// status; group_id is validated (and cleared when empty). Trainers may only
// touch components of their own lab.
func (r *Repo) UpdateComponent(ctx context.Context, actor Actor, id string, fields map[string]interface{}) error {
	comp, err := r.FindComponentByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccessLab(comp.LabID) {
		return ErrComponentNotFound
	}

	if v, ok := fields["initial_quantity"]; ok {
		q, ok := toInt(v)
		if !ok || q < 0 {
			return fmt.Errorf("%w: initial_quantity", ErrNegativeQuantity)
		}
		fields["initial_quantity"] = q
		comp.InitialQuantity = q
		// 只降 initial 时现库存也不能被甩在上面
		if _, also := fields["current_quantity"]; !also && comp.CurrentQuantity > q {
			return fmt.Errorf("%w: component %q holds %d",
				ErrExceedsInitialStock, comp.Name, comp.CurrentQuantity)
		}
	}

	if v, ok := fields["current_quantity"]; ok {
		q, ok := toInt(v)
		if !ok || q < 0 {
			return fmt.Errorf("%w: current_quantity", ErrNegativeQuantity)
		}
		// 同一条不变式管住所有改库存的入口
		if q > comp.InitialQuantity {
			return fmt.Errorf("%w: component %q has initial quantity %d",
				ErrExceedsInitialStock, comp.Name, comp.InitialQuantity)
		}
		fields["current_quantity"] = q
		fields["status"] = inventory.StatusForQuantity(q)
	}

	if v, ok := fields["group_id"]; ok {
		gid, _ := v.(string)
		if gid == "" {
			fields["group_id"] = nil
			fields["group_name"] = ""
		} else {
			g, err := r.FindGroupByID(ctx, gid)
			if err != nil {
				return err
			}
			if actor.IsTrainer() && g.LabID != nil && *g.LabID != actor.LabID {
				return fmt.Errorf("%w: group belongs to another lab", ErrAccessDenied)
			}
			fields["group_id"] = g.ID
			fields["group_name"] = g.Name
		}
	}

	res := r.DB.WithContext(ctx).Model(&models.Component{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrComponentNotFound
	}
	return nil
}

func (r *Repo) DeleteComponent(ctx context.Context, actor Actor, id string) error {
	comp, err := r.FindComponentByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccessLab(comp.LabID) {
		return ErrComponentNotFound
	}
	return r.DB.WithContext(ctx).Delete(&models.Component{}, "id = ?", id).Error
}

// setQuantity is the stock ledger write: one place recomputes status from
// the new quantity. Bound checks against initial_quantity belong to the
// caller, which knows which rule it is enforcing.
func setQuantity(tx *gorm.DB, comp *models.Component, newQuantity int) error {
	comp.CurrentQuantity = newQuantity
	comp.Status = inventory.StatusForQuantity(newQuantity)
	return tx.Model(&models.Component{}).
		Where("id = ?", comp.ID).
		Updates(map[string]interface{}{
			"current_quantity": comp.CurrentQuantity,
			"status":           comp.Status,
		}).Error
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
