package controllers

import (
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	// 登录页带角色单选，选错也算登录失败
	Role string `json:"role"`
}

func (s *Srv) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}

	u, err := s.Repo.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil || u.Role != req.Role ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid username, password, or role selection"})
		return
	}

	if err := s.issueSession(c.Request.Context(), c.Writer, u.ID, u.Role); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"userID":   u.ID,
		"username": u.Username,
		"role":     u.Role,
		"labId":    u.LabID,
		"labName":  u.LabName,
	})
}

func (s *Srv) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = s.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (s *Srv) WhoAmI(c *gin.Context) {
	actor := app.ActorFrom(c)
	u, err := s.Repo.FindUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"userID":   u.ID,
		"username": u.Username,
		"role":     u.Role,
		"labId":    u.LabID,
		"labName":  u.LabName,
	})
}
