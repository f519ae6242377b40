package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/db"
	"Gin_postgres_redis_lab_inventory/importer"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/gin-gonic/gin"
)

type ComponentController struct{ *Srv }

func NewComponentController(s *Srv) *ComponentController { return &ComponentController{Srv: s} }

type CreateComponentReq struct {
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Lab             string `json:"lab"` // admin 必填；trainer 忽略
	GroupID         string `json:"groupId"`
	InitialQuantity int    `json:"initialQuantity"`
	CurrentQuantity int    `json:"currentQuantity"`
}

func (cc *ComponentController) CreateComponent(c *gin.Context) {
	var req CreateComponentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	comp, err := cc.Repo.CreateComponent(c.Request.Context(), app.ActorFrom(c), db.CreateComponentInput{
		Name:            req.Name,
		Category:        req.Category,
		LabName:         req.Lab,
		GroupID:         req.GroupID,
		InitialQuantity: req.InitialQuantity,
		CurrentQuantity: req.CurrentQuantity,
	})
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{
		"message": "Component created successfully",
		"id":      comp.ID,
		"uid":     comp.UID,
	})
}

// ListComponents 分页列表；trainer 固定看自己 lab
func (cc *ComponentController) ListComponents(c *gin.Context) {
	actor := app.ActorFrom(c)
	q := db.ComponentsQuery{
		Keyword:  c.Query("q"),
		Category: c.Query("category"),
		LabID:    c.Query("labId"),
		GroupID:  c.Query("groupId"),
	}
	if actor.IsTrainer() {
		q.LabID = actor.LabID
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := cc.Repo.ListComponentsPaged(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (cc *ComponentController) ListComponentsByLab(c *gin.Context) {
	actor := app.ActorFrom(c)
	labName := c.Param("labName")

	var labID string
	if actor.IsTrainer() {
		if labName != actor.LabName {
			c.JSON(http.StatusForbidden, app.H{"error": "access denied"})
			return
		}
		labID = actor.LabID
	} else {
		lab, err := cc.Repo.FindLabByName(c.Request.Context(), labName)
		if err != nil {
			repoError(c, err)
			return
		}
		labID = lab.ID
	}

	cs, err := cc.Repo.ListComponentsByLab(c.Request.Context(), labID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"components": cs})
}

func (cc *ComponentController) GetComponent(c *gin.Context) {
	comp, err := cc.Repo.FindComponentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		repoError(c, err)
		return
	}
	actor := app.ActorFrom(c)
	if actor.IsTrainer() && comp.LabID != actor.LabID {
		c.JSON(http.StatusForbidden, app.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, comp)
}

type UpdateComponentReq struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	GroupID         *string `json:"groupId"`
	InitialQuantity *int    `json:"initialQuantity"`
	CurrentQuantity *int    `json:"currentQuantity"`
}

func (cc *ComponentController) UpdateComponent(c *gin.Context) {
	var req UpdateComponentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.GroupID != nil {
		fields["group_id"] = *req.GroupID
	}
	if req.InitialQuantity != nil {
		fields["initial_quantity"] = *req.InitialQuantity
	}
	if req.CurrentQuantity != nil {
		fields["current_quantity"] = *req.CurrentQuantity
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}
	if err := cc.Repo.UpdateComponent(c.Request.Context(), app.ActorFrom(c), c.Param("id"), fields); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Component updated successfully"})
}

func (cc *ComponentController) DeleteComponent(c *gin.Context) {
	if err := cc.Repo.DeleteComponent(c.Request.Context(), app.ActorFrom(c), c.Param("id")); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Component deleted successfully"})
}

// ExportComponents streams the actor's visible components as csv or xlsx
// (?format=csv|xlsx, default xlsx).
func (cc *ComponentController) ExportComponents(c *gin.Context) {
	actor := app.ActorFrom(c)
	var (
		cs  []models.Component
		err error
	)
	if actor.IsTrainer() {
		cs, err = cc.Repo.ListComponentsByLab(c.Request.Context(), actor.LabID)
	} else {
		cs, err = cc.Repo.ListComponents(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	stamp := time.Now().UTC().Format("20060102")
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=components_%s.csv", stamp))
		c.Header("Content-Type", "text/csv")
		if err := importer.WriteCSV(c.Writer, cs); err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=components_%s.xlsx", stamp))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := importer.WriteXLSX(c.Writer, cs); err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
	default:
		c.JSON(http.StatusBadRequest, app.H{"error": "unsupported export format"})
	}
}
