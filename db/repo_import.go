package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"Gin_postgres_redis_lab_inventory/inventory"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/google/uuid"
)

// ImportRow is one tabular row handed over by the file parser. Quantities
// arrive as raw strings; validating them is part of the import, not the
// parser.
type ImportRow struct {
	Name            string
	Category        string
	Lab             string
	Group           string
	UID             string
	InitialQuantity string
	CurrentQuantity string
}

type ImportResult struct {
	ImportedCount int      `json:"imported_count"`
	Errors        []string `json:"errors"`
	TotalRows     int      `json:"total_rows"`
}

// ImportComponents runs the row-by-row import loop. Rows fail
// independently: any validation or business-rule problem lands in the
// result's error list (1-indexed) and the batch continues. Rows matching an
// existing (name, lab) component update it in place; new groups are
// auto-created once per batch and new UIDs never collide inside it.
func (r *Repo) ImportComponents(ctx context.Context, actor Actor, rows []ImportRow) (*ImportResult, error) {
	labs, err := r.ListLabs(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := r.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	comps, err := r.ListComponents(ctx)
	if err != nil {
		return nil, err
	}

	// 一次建好索引，后面逐行都是 map 查找
	labByKey := make(map[string]*models.Lab, len(labs))
	for i := range labs {
		labByKey[inventory.NormalizeKey(labs[i].Name)] = &labs[i]
	}
	catByKey := make(map[string]string, len(cats))
	for _, c := range cats {
		catByKey[inventory.NormalizeKey(c)] = c
	}
	groupByKey := make(map[string]*models.ComponentGroup, len(groups))
	for i := range groups {
		labID := ""
		if groups[i].LabID != nil {
			labID = *groups[i].LabID
		}
		groupByKey[inventory.GroupKey(groups[i].Name, labID)] = &groups[i]
	}
	usedUIDs := inventory.UsedUIDs(comps)
	compByKey := make(map[string]*models.Component, len(comps))
	for i := range comps {
		compByKey[comps[i].LabID+"|"+comps[i].Name] = &comps[i]
	}

	res := &ImportResult{TotalRows: len(rows)}
	for i, row := range rows {
		rowNum := i + 1
		if err := r.importRow(ctx, actor, row, rowNum, res,
			labByKey, catByKey, groupByKey, usedUIDs, compByKey); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return res, nil
}

func (r *Repo) importRow(
	ctx context.Context,
	actor Actor,
	row ImportRow,
	rowNum int,
	res *ImportResult,
	labByKey map[string]*models.Lab,
	catByKey map[string]string,
	groupByKey map[string]*models.ComponentGroup,
	usedUIDs map[string]struct{},
	compByKey map[string]*models.Component,
) error {
	name := strings.TrimSpace(row.Name)
	category := strings.TrimSpace(row.Category)
	labName := strings.TrimSpace(row.Lab)
	if name == "" || category == "" || labName == "" {
		res.Errors = append(res.Errors,
			fmt.Sprintf("Row %d: Missing required fields (name, category, or lab)", rowNum))
		return nil
	}

	initialQty, err1 := strconv.Atoi(strings.TrimSpace(row.InitialQuantity))
	currentQty, err2 := strconv.Atoi(strings.TrimSpace(row.CurrentQuantity))
	if err1 != nil || err2 != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Invalid quantity values", rowNum))
		return nil
	}
	if initialQty < 0 || currentQty < 0 {
		res.Errors = append(res.Errors,
			fmt.Sprintf("Row %d: Quantity values must be non-negative", rowNum))
		return nil
	}

	lab, ok := labByKey[inventory.NormalizeKey(labName)]
	if !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Lab '%s' not found", rowNum, labName))
		return nil
	}
	if actor.IsTrainer() && lab.ID != actor.LabID {
		res.Errors = append(res.Errors,
			fmt.Sprintf("Row %d: You can only import components for your assigned lab '%s'", rowNum, actor.LabName))
		return nil
	}

	canonicalCategory := inventory.CanonicalCategory(category, catByKey)

	uid := strings.TrimSpace(row.UID)
	if uid != "" {
		if _, taken := usedUIDs[uid]; taken {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: UID '%s' already exists", rowNum, uid))
			return nil
		}
	} else {
		uid = inventory.GenerateUID(lab, usedUIDs)
	}

	var groupID *string
	groupName := ""
	if g := strings.TrimSpace(row.Group); g != "" {
		key := inventory.GroupKey(g, lab.ID)
		grp, ok := groupByKey[key]
		if !ok {
			created, _, err := r.ResolveGroup(ctx, g, lab)
			if err != nil {
				return err
			}
			grp = created
			// 同一批后续行直接命中，不再重复建组
			groupByKey[key] = grp
		}
		groupID = &grp.ID
		groupName = grp.Name
	}

	status := inventory.StatusForQuantity(currentQty)

	if existing, ok := compByKey[lab.ID+"|"+name]; ok {
		fields := map[string]interface{}{
			"category":         canonicalCategory,
			"initial_quantity": initialQty,
			"current_quantity": currentQty,
			"status":           status,
			"uid":              uid,
		}
		if groupID != nil {
			fields["group_id"] = *groupID
			fields["group_name"] = groupName
		}
		if err := r.DB.WithContext(ctx).Model(&models.Component{}).
			Where("id = ?", existing.ID).Updates(fields).Error; err != nil {
			return err
		}
		if existing.UID != uid {
			delete(usedUIDs, existing.UID)
			existing.UID = uid
			usedUIDs[uid] = struct{}{}
		}
		res.ImportedCount++
		res.Errors = append(res.Errors,
			fmt.Sprintf("Row %d: Component '%s' updated (already existed)", rowNum, name))
		return nil
	}

	comp := &models.Component{
		ID:              uuid.NewString(),
		UID:             uid,
		Name:            name,
		Category:        canonicalCategory,
		Lab:             lab.Name,
		LabID:           lab.ID,
		GroupID:         groupID,
		GroupName:       groupName,
		InitialQuantity: initialQty,
		CurrentQuantity: currentQty,
		Status:          status,
	}
	if err := r.DB.WithContext(ctx).Create(comp).Error; err != nil {
		return err
	}
	res.ImportedCount++
	usedUIDs[uid] = struct{}{}
	compByKey[lab.ID+"|"+name] = comp
	return nil
}
