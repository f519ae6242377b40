// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/db"
	"Gin_postgres_redis_lab_inventory/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

func (s *Srv) GetAppSess() *session.AppSessionStore { return s.AppSess }

// --- helpers ---

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// 登录成功：创建会话 + 记一次登录
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID, role string) error {
	// 登录计数失败不阻塞登录
	_ = s.Repo.TouchUserLogin(ctx, userID)
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID, role); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// repoError maps the db error taxonomy onto HTTP statuses: validation and
// business-rule problems are 400, missing records 404, scope violations
// 403, everything else 500.
func repoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrInvalidQuantity),
		errors.Is(err, db.ErrNegativeQuantity),
		errors.Is(err, db.ErrExceedsIssued),
		errors.Is(err, db.ErrInsufficientStock),
		errors.Is(err, db.ErrNoActiveIssue),
		errors.Is(err, db.ErrOverReturn),
		errors.Is(err, db.ErrExceedsInitialStock),
		errors.Is(err, db.ErrNegativeStock),
		errors.Is(err, db.ErrGroupInUse),
		errors.Is(err, db.ErrDuplicate):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrLabNotFound),
		errors.Is(err, db.ErrComponentNotFound),
		errors.Is(err, db.ErrGroupNotFound),
		errors.Is(err, db.ErrTransactionNotFound),
		errors.Is(err, db.ErrUserNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrAccessDenied):
		c.JSON(http.StatusForbidden, app.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
