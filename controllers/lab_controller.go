package controllers

import (
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabController struct{ *Srv }

func NewLabController(s *Srv) *LabController { return &LabController{Srv: s} }

type CreateLabReq struct {
	Name        string `json:"name" binding:"required"`
	LabID       string `json:"labId" binding:"required"` // 展示编号 LAB-00x
	Location    string `json:"location"`
	DeviceCount int    `json:"deviceCount"`
	Status      string `json:"status"`
}

func (lc *LabController) CreateLab(c *gin.Context) {
	var req CreateLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = models.LabStatusActive
	}
	lab := &models.Lab{
		ID:          uuid.NewString(),
		LabID:       req.LabID,
		Name:        req.Name,
		Location:    req.Location,
		DeviceCount: req.DeviceCount,
		Status:      req.Status,
	}
	if err := lc.Repo.CreateLab(c.Request.Context(), lab); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"message": "Lab created successfully", "id": lab.ID})
}

func (lc *LabController) ListLabs(c *gin.Context) {
	labs, err := lc.Repo.ListLabs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"labs": labs})
}

func (lc *LabController) GetLab(c *gin.Context) {
	lab, err := lc.Repo.FindLabByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, lab)
}

type UpdateLabReq struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	DeviceCount *int    `json:"deviceCount"`
	Status      *string `json:"status"`
}

func (lc *LabController) UpdateLab(c *gin.Context) {
	var req UpdateLabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.DeviceCount != nil {
		fields["device_count"] = *req.DeviceCount
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}
	if err := lc.Repo.UpdateLab(c.Request.Context(), c.Param("id"), fields); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Lab updated successfully"})
}

func (lc *LabController) DeleteLab(c *gin.Context) {
	if err := lc.Repo.DeleteLab(c.Request.Context(), c.Param("id")); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Lab deleted successfully"})
}
