package controllers

import (
	"net/http"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/db"

	"github.com/gin-gonic/gin"
)

type TransactionController struct{ *Srv }

func NewTransactionController(s *Srv) *TransactionController {
	return &TransactionController{Srv: s}
}

type CreateTransactionReq struct {
	Type          string `json:"type"` // issue（默认）或 return
	ComponentName string `json:"componentName" binding:"required"`
	Lab           string `json:"lab"` // admin 必填；trainer 忽略
	IssuedTo      string `json:"issuedTo" binding:"required"`
	Campus        string `json:"campus"`
	Purpose       string `json:"purpose"`

	QuantityIssued   int `json:"quantityIssued"`
	QuantityReturned int `json:"quantityReturned"`
}

// CreateTransaction dispatches on type: an issue opens a new transaction,
// a return settles against the recipient's oldest open issue.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var req CreateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	actor := app.ActorFrom(c)

	if req.Type == "return" {
		t, err := tc.Repo.ReturnComponent(c.Request.Context(), actor, db.ReturnInput{
			ComponentName:    req.ComponentName,
			LabName:          req.Lab,
			IssuedTo:         req.IssuedTo,
			QuantityReturned: req.QuantityReturned,
		})
		if err != nil {
			repoError(c, err)
			return
		}
		c.JSON(http.StatusOK, app.H{"message": "Component returned successfully", "transaction": t})
		return
	}

	t, err := tc.Repo.IssueComponent(c.Request.Context(), actor, db.IssueInput{
		ComponentName:  req.ComponentName,
		LabName:        req.Lab,
		IssuedTo:       req.IssuedTo,
		Campus:         req.Campus,
		Purpose:        req.Purpose,
		QuantityIssued: req.QuantityIssued,
	})
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"message": "Transaction created successfully", "id": t.ID})
}

type UpdateTransactionReq struct {
	QuantityReturned *int    `json:"quantityReturned"`
	IssuedTo         *string `json:"issuedTo"`
	Campus           *string `json:"campus"`
	Purpose          *string `json:"purpose"`
}

func (tc *TransactionController) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	t, err := tc.Repo.UpdateTransaction(c.Request.Context(), app.ActorFrom(c), c.Param("id"), db.UpdateTransactionInput{
		QuantityReturned: req.QuantityReturned,
		IssuedTo:         req.IssuedTo,
		Campus:           req.Campus,
		Purpose:          req.Purpose,
	})
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Transaction updated successfully", "transaction": t})
}

func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	if err := tc.Repo.DeleteTransaction(c.Request.Context(), app.ActorFrom(c), c.Param("id")); err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Transaction deleted successfully"})
}

func (tc *TransactionController) GetTransaction(c *gin.Context) {
	t, err := tc.Repo.FindTransactionByID(c.Request.Context(), app.ActorFrom(c), c.Param("id"))
	if err != nil {
		repoError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (tc *TransactionController) ListTransactions(c *gin.Context) {
	ts, err := tc.Repo.ListTransactions(c.Request.Context(), app.ActorFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"transactions": ts})
}

func (tc *TransactionController) ListOverdue(c *gin.Context) {
	ts, err := tc.Repo.ListOverdueTransactions(c.Request.Context(), app.ActorFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"overdue": ts, "total": len(ts)})
}
