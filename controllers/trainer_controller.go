package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/db"
	"Gin_postgres_redis_lab_inventory/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TrainerController struct{ *Srv }

func NewTrainerController(s *Srv) *TrainerController { return &TrainerController{Srv: s} }

type CreateTrainerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	LabID    string `json:"labId" binding:"required"`
}

func (tc *TrainerController) CreateTrainer(c *gin.Context) {
	var req CreateTrainerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	if _, err := tc.Repo.FindUserByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "username already exists"})
		return
	} else if !errors.Is(err, db.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	lab, err := tc.Repo.FindLabByID(c.Request.Context(), req.LabID)
	if err != nil {
		repoError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleTrainer,
		LabID:        &lab.ID,
		LabName:      lab.Name,
	}
	if err := tc.Repo.CreateUser(c.Request.Context(), u); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app.H{"message": "Trainer created successfully", "id": u.ID})
}

func (tc *TrainerController) ListTrainers(c *gin.Context) {
	ts, err := tc.Repo.ListTrainers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"trainers": ts})
}

func (tc *TrainerController) GetTrainer(c *gin.Context) {
	u, err := tc.Repo.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil || !u.IsTrainer() {
		c.JSON(http.StatusNotFound, app.H{"error": "trainer not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type UpdateTrainerReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	LabID    *string `json:"labId"`
}

func (tc *TrainerController) UpdateTrainer(c *gin.Context) {
	var req UpdateTrainerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		fields["password_hash"] = string(hash)
	}
	if req.LabID != nil {
		lab, err := tc.Repo.FindLabByID(c.Request.Context(), *req.LabID)
		if err != nil {
			repoError(c, err)
			return
		}
		// lab 换绑时冗余的 lab_name 一起换
		fields["lab_id"] = lab.ID
		fields["lab_name"] = lab.Name
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "nothing to update"})
		return
	}

	id := c.Param("id")
	if err := tc.Repo.UpdateTrainer(c.Request.Context(), id, fields); err != nil {
		repoError(c, err)
		return
	}
	// 改绑后旧会话的 lab 视野失效，全部撤销
	if req.LabID != nil || (req.Password != nil && *req.Password != "") {
		_ = tc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, app.H{"message": "Trainer updated successfully"})
}

func (tc *TrainerController) DeleteTrainer(c *gin.Context) {
	id := c.Param("id")
	u, err := tc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil || !u.IsTrainer() {
		c.JSON(http.StatusNotFound, app.H{"error": "trainer not found"})
		return
	}
	if err := tc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		repoError(c, err)
		return
	}
	_ = tc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"message": "Trainer deleted successfully"})
}
