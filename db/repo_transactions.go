package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Gin_postgres_redis_lab_inventory/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueInput struct {
	ComponentName  string
	LabName        string // admin 指定；trainer 用自己绑定的 lab
	IssuedTo       string
	Campus         string
	Purpose        string
	QuantityIssued int
}

// IssueComponent hands quantity_issued units of a component to a recipient:
// stock is decremented, status re-derived, and a transaction row opens with
// the full amount pending. Stock check and both writes run in one database
// transaction.
func (r *Repo) IssueComponent(ctx context.Context, actor Actor, in IssueInput) (*models.Transaction, error) {
	if in.QuantityIssued <= 0 {
		return nil, fmt.Errorf("%w: quantity issued must be positive", ErrInvalidQuantity)
	}

	lab, err := r.resolveLab(ctx, actor, in.LabName)
	if err != nil {
		return nil, err
	}

	var created *models.Transaction
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comp, err := findComponentForUpdate(tx, in.ComponentName, lab.ID)
		if err != nil {
			return err
		}

		if in.QuantityIssued > comp.CurrentQuantity {
			return fmt.Errorf("%w (%d in stock)", ErrInsufficientStock, comp.CurrentQuantity)
		}

		if err := setQuantity(tx, comp, comp.CurrentQuantity-in.QuantityIssued); err != nil {
			return err
		}

		t := &models.Transaction{
			ID:               uuid.NewString(),
			ComponentID:      comp.ID,
			ComponentName:    comp.Name,
			ComponentUID:     comp.UID,
			Lab:              lab.Name,
			LabID:            lab.ID,
			IssuedTo:         in.IssuedTo,
			Campus:           in.Campus,
			Purpose:          in.Purpose,
			QuantityIssued:   in.QuantityIssued,
			QuantityReturned: 0,
			PendingQuantity:  in.QuantityIssued,
			Status:           models.TxIssued,
			IssueDate:        time.Now().UTC(),
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type ReturnInput struct {
	ComponentName    string
	LabName          string
	IssuedTo         string
	QuantityReturned int
}

// ReturnComponent settles a return against the recipient's oldest open
// issue of the component (FIFO, single transaction only; no auto-split
// across issues). The transaction's pending/returned split and the
// component's stock move together or not at all.
func (r *Repo) ReturnComponent(ctx context.Context, actor Actor, in ReturnInput) (*models.Transaction, error) {
	if in.QuantityReturned <= 0 {
		return nil, fmt.Errorf("%w: quantity returned must be positive", ErrInvalidQuantity)
	}

	lab, err := r.resolveLab(ctx, actor, in.LabName)
	if err != nil {
		return nil, err
	}

	var settled *models.Transaction
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comp, err := findComponentForUpdate(tx, in.ComponentName, lab.ID)
		if err != nil {
			return err
		}

		var open models.Transaction
		err = tx.
			Where("component_id = ? AND issued_to = ? AND pending_quantity > 0", comp.ID, in.IssuedTo).
			Order("issue_date ASC").
			First(&open).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveIssue
			}
			return err
		}

		if in.QuantityReturned > open.PendingQuantity {
			return fmt.Errorf("%w (%d)", ErrOverReturn, open.PendingQuantity)
		}

		newStock := comp.CurrentQuantity + in.QuantityReturned
		if newStock > comp.InitialQuantity {
			return fmt.Errorf("%w (initial quantity %d)", ErrExceedsInitialStock, comp.InitialQuantity)
		}

		open.PendingQuantity -= in.QuantityReturned
		open.QuantityReturned += in.QuantityReturned
		if open.PendingQuantity == 0 {
			open.Status = models.TxReturned
			now := time.Now().UTC()
			open.ReturnDate = &now
		} else {
			open.Status = models.TxPartiallyReturned
		}
		if err := tx.Model(&models.Transaction{}).
			Where("id = ?", open.ID).
			Updates(map[string]interface{}{
				"pending_quantity":  open.PendingQuantity,
				"quantity_returned": open.QuantityReturned,
				"status":            open.Status,
				"return_date":       open.ReturnDate,
			}).Error; err != nil {
			return err
		}

		if err := setQuantity(tx, comp, newStock); err != nil {
			return err
		}
		settled = &open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

type UpdateTransactionInput struct {
	// 对账修正入口：直接改累计归还数，允许把状态往回拨
	QuantityReturned *int
	IssuedTo         *string
	Campus           *string
	Purpose          *string
}

// UpdateTransaction corrects a transaction in place. Editing
// quantity_returned applies the delta to the component's stock under the
// same bounds as a return; pending_quantity and status are recomputed.
// return_date, once set, is deliberately left in place even when the edit
// moves the status back below fully-returned.
func (r *Repo) UpdateTransaction(ctx context.Context, actor Actor, id string, in UpdateTransactionInput) (*models.Transaction, error) {
	var updated *models.Transaction
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if !actor.CanAccessLab(t.LabID) {
			return ErrTransactionNotFound
		}

		fields := map[string]interface{}{}
		if in.IssuedTo != nil {
			fields["issued_to"] = *in.IssuedTo
			t.IssuedTo = *in.IssuedTo
		}
		if in.Campus != nil {
			fields["campus"] = *in.Campus
			t.Campus = *in.Campus
		}
		if in.Purpose != nil {
			fields["purpose"] = *in.Purpose
			t.Purpose = *in.Purpose
		}

		if in.QuantityReturned != nil {
			newReturned := *in.QuantityReturned
			if newReturned < 0 {
				return ErrNegativeQuantity
			}
			if newReturned > t.QuantityIssued {
				return ErrExceedsIssued
			}

			var comp models.Component
			if err := tx.First(&comp, "id = ?", t.ComponentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrComponentNotFound
				}
				return err
			}

			delta := newReturned - t.QuantityReturned
			if delta != 0 {
				newStock := comp.CurrentQuantity + delta
				if newStock > comp.InitialQuantity {
					return fmt.Errorf("%w: component %q has initial quantity %d",
						ErrExceedsInitialStock, comp.Name, comp.InitialQuantity)
				}
				if newStock < 0 {
					return fmt.Errorf("%w: component %q", ErrNegativeStock, comp.Name)
				}
				if err := setQuantity(tx, &comp, newStock); err != nil {
					return err
				}
			}

			t.QuantityReturned = newReturned
			t.PendingQuantity = t.QuantityIssued - newReturned
			switch {
			case newReturned == 0:
				t.Status = models.TxIssued
			case newReturned == t.QuantityIssued:
				t.Status = models.TxReturned
				if t.ReturnDate == nil {
					now := time.Now().UTC()
					t.ReturnDate = &now
					fields["return_date"] = t.ReturnDate
				}
			default:
				t.Status = models.TxPartiallyReturned
			}
			fields["quantity_returned"] = t.QuantityReturned
			fields["pending_quantity"] = t.PendingQuantity
			fields["status"] = t.Status
		}

		if len(fields) == 0 {
			updated = &t
			return nil
		}
		if err := tx.Model(&models.Transaction{}).Where("id = ?", t.ID).Updates(fields).Error; err != nil {
			return err
		}
		updated = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction. An outstanding pending amount is
// first handed back to the component's stock, so deleting an open issue
// never loses inventory.
func (r *Repo) DeleteTransaction(ctx context.Context, actor Actor, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if !actor.CanAccessLab(t.LabID) {
			return ErrTransactionNotFound
		}

		if t.PendingQuantity > 0 {
			var comp models.Component
			err := tx.First(&comp, "id = ?", t.ComponentID).Error
			switch {
			case err == nil:
				if err := setQuantity(tx, &comp, comp.CurrentQuantity+t.PendingQuantity); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// 组件已被删，库存无处可还，照常删记录
			default:
				return err
			}
		}

		return tx.Delete(&models.Transaction{}, "id = ?", t.ID).Error
	})
}

func (r *Repo) FindTransactionByID(ctx context.Context, actor Actor, id string) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.DB.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if !actor.CanAccessLab(t.LabID) {
		return nil, ErrAccessDenied
	}
	return &t, nil
}

func (r *Repo) ListTransactions(ctx context.Context, actor Actor) ([]models.Transaction, error) {
	q := r.DB.WithContext(ctx).Model(&models.Transaction{}).Order("issue_date DESC")
	if actor.IsTrainer() {
		q = q.Where("lab_id = ?", actor.LabID)
	}
	var ts []models.Transaction
	err := q.Find(&ts).Error
	return ts, err
}

// resolveLab picks the lab a transaction targets: trainers always act on
// their bound lab, admins address one by name.
func (r *Repo) resolveLab(ctx context.Context, actor Actor, labName string) (*models.Lab, error) {
	if actor.IsTrainer() {
		return r.FindLabByID(ctx, actor.LabID)
	}
	return r.FindLabByName(ctx, labName)
}

func findComponentForUpdate(tx *gorm.DB, name, labID string) (*models.Component, error) {
	var comp models.Component
	err := tx.Where("name = ? AND lab_id = ?", name, labID).First(&comp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}
	return &comp, nil
}
