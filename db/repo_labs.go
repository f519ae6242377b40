package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_lab_inventory/inventory"
	"Gin_postgres_redis_lab_inventory/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateLab(ctx context.Context, lab *models.Lab) error {
	return r.DB.WithContext(ctx).Create(lab).Error
}

func (r *Repo) FindLabByID(ctx context.Context, id string) (*models.Lab, error) {
	var lab models.Lab
	if err := r.DB.WithContext(ctx).First(&lab, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabNotFound
		}
		return nil, err
	}
	return &lab, nil
}

func (r *Repo) FindLabByName(ctx context.Context, name string) (*models.Lab, error) {
	var lab models.Lab
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = ?", inventory.NormalizeKey(name)).
		First(&lab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabNotFound
		}
		return nil, err
	}
	return &lab, nil
}

func (r *Repo) ListLabs(ctx context.Context) ([]models.Lab, error) {
	var labs []models.Lab
	err := r.DB.WithContext(ctx).Order("lab_id ASC").Find(&labs).Error
	return labs, err
}

func (r *Repo) UpdateLab(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Lab{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLabNotFound
		}

		// lab 改名时，各处冗余的名称跟着改
		name, ok := fields["name"].(string)
		if !ok {
			return nil
		}
		if err := tx.Model(&models.Component{}).
			Where("lab_id = ?", id).Update("lab", name).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("lab_id = ?", id).Update("lab", name).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("lab_id = ?", id).Update("lab_name", name).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ComponentGroup{}).
			Where("lab_id = ?", id).Update("lab_name", name).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *Repo) DeleteLab(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Lab{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLabNotFound
	}
	return nil
}
