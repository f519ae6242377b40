package controllers

import (
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/gin-gonic/gin"
)

type GroupController struct{ *Srv }

func NewGroupController(s *Srv) *GroupController { return &GroupController{Srv: s} }

type CreateGroupReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	LabID       string `json:"labId"` // admin 可指定；trainer 恒为自己的 lab
}

func (gc *GroupController) CreateGroup(c *gin.Context) {
	var req CreateGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	actor := app.ActorFrom(c)

	g := &models.ComponentGroup{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	labID := req.LabID
	if actor.IsTrainer() {
		labID = actor.LabID
	}
	if labID != "" {
		lab, err := gc.Repo.FindLabByID(c.Request.Context(), labID)
		if err != nil {
			repoError(c, err)
			return
		}
		g.LabID = &lab.ID
		g.LabName = lab.Name
	}

	if err := gc.Repo.CreateGroup(c.Request.Context(), g); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"message": "Component group created successfully", "id": g.ID})
}

func (gc *GroupController) ListGroups(c *gin.Context) {
	actor := app.ActorFrom(c)
	var (
		gs  []models.ComponentGroup
		err error
	)
	if actor.IsTrainer() {
		gs, err = gc.Repo.ListGroupsForLab(c.Request.Context(), actor.LabID)
	} else {
		gs, err = gc.Repo.ListGroups(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"groups": gs})
}

func (gc *GroupController) GetGroup(c *gin.Context) {
	g, err := gc.Repo.FindGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		repoError(c, err)
		return
	}
	actor := app.ActorFrom(c)
	if actor.IsTrainer() && g.LabID != nil && *g.LabID != actor.LabID {
		c.JSON(http.StatusForbidden, app.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, g)
}

type UpdateGroupReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (gc *GroupController) UpdateGroup(c *gin.Context) {
	var req UpdateGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !gc.trainerOwnsGroup(c) {
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}
	if err := gc.Repo.UpdateGroup(c.Request.Context(), c.Param("id"), fields); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Component group updated successfully"})
}

func (gc *GroupController) DeleteGroup(c *gin.Context) {
	if !gc.trainerOwnsGroup(c) {
		return
	}
	if err := gc.Repo.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Component group deleted successfully"})
}

// trainerOwnsGroup rejects trainers touching another lab's group. Writes
// the error response itself and reports whether to continue.
func (gc *GroupController) trainerOwnsGroup(c *gin.Context) bool {
	actor := app.ActorFrom(c)
	if !actor.IsTrainer() {
		return true
	}
	g, err := gc.Repo.FindGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		repoError(c, err)
		return false
	}
	if g.LabID != nil && *g.LabID != actor.LabID {
		c.JSON(http.StatusNotFound, app.H{"error": "group not found or access denied"})
		return false
	}
	return true
}
