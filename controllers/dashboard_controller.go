package controllers

import (
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ *Srv }

func NewDashboardController(s *Srv) *DashboardController { return &DashboardController{Srv: s} }

func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.Repo.GetDashboardStats(c.Request.Context(), app.ActorFrom(c))
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
