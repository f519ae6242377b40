package app

import (
	"Gin_postgres_redis_lab_inventory/db"
	"Gin_postgres_redis_lab_inventory/models"
	"Gin_postgres_redis_lab_inventory/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// AuthRequired resolves the session cookie to a live user and stashes the
// role-scoped identity in the context for handlers and the repo layer.
func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// 确认用户仍存在（只查一次），角色/实验室一并放进 Context
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("username", u.Username)
		c.Set("role", u.Role)
		if u.LabID != nil {
			c.Set("labID", *u.LabID)
		}
		c.Set("labName", u.LabName)

		c.Next()
	}
}

// AdminOnly gates a route group to the admin role. Runs after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("role")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if role, _ := v.(string); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ActorFrom rebuilds the repo-facing actor from what AuthRequired stored.
func ActorFrom(c *gin.Context) db.Actor {
	a := db.Actor{}
	if v, ok := c.Get("userID"); ok {
		a.UserID, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		a.Role, _ = v.(string)
	}
	if v, ok := c.Get("labID"); ok {
		a.LabID, _ = v.(string)
	}
	if v, ok := c.Get("labName"); ok {
		a.LabName, _ = v.(string)
	}
	return a
}
