package routes

import (
	"time"

	"Gin_postgres_redis_lab_inventory/app"
	"Gin_postgres_redis_lab_inventory/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	trainerCtl := controllers.NewTrainerController(s)
	labCtl := controllers.NewLabController(s)
	groupCtl := controllers.NewGroupController(s)
	compCtl := controllers.NewComponentController(s)
	txCtl := controllers.NewTransactionController(s)
	importCtl := controllers.NewImportController(s)
	dashCtl := controllers.NewDashboardController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.GetAppSess(), s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 登录（公开）
	// ------------------------------
	r.POST("/login", s.Login)

	auth := r.Group("", authMW, seenMW)
	{
		auth.POST("/logout", s.Logout)
		auth.GET("/whoami", s.WhoAmI)
	}

	// ------------------------------
	// 培训师管理（仅管理员）
	// ------------------------------
	trainers := r.Group("/api/trainers", authMW, adminMW)
	{
		trainers.POST("", trainerCtl.CreateTrainer)
		trainers.GET("", trainerCtl.ListTrainers)
		trainers.GET("/:id", trainerCtl.GetTrainer)
		trainers.PUT("/:id", trainerCtl.UpdateTrainer)
		trainers.DELETE("/:id", trainerCtl.DeleteTrainer)
	}

	// ------------------------------
	// 实验室管理（仅管理员可写）
	// ------------------------------
	labsAdmin := r.Group("/api/labs", authMW, adminMW)
	{
		labsAdmin.POST("", labCtl.CreateLab)
		labsAdmin.PUT("/:id", labCtl.UpdateLab)
		labsAdmin.DELETE("/:id", labCtl.DeleteLab)
	}

	labs := r.Group("/api/labs", authMW, seenMW)
	{
		labs.GET("", labCtl.ListLabs)
		labs.GET("/:id", labCtl.GetLab)
	}

	// ------------------------------
	// 分组（admin 全局，trainer 限本实验室）
	// ------------------------------
	groups := r.Group("/api/component-groups", authMW, seenMW)
	{
		groups.POST("", groupCtl.CreateGroup)
		groups.GET("", groupCtl.ListGroups)
		groups.GET("/:id", groupCtl.GetGroup)
		groups.PUT("/:id", groupCtl.UpdateGroup)
		groups.DELETE("/:id", groupCtl.DeleteGroup)
	}

	// ------------------------------
	// 元器件库存
	// ------------------------------
	comps := r.Group("/api/components", authMW, seenMW)
	{
		comps.POST("", compCtl.CreateComponent)
		comps.GET("", compCtl.ListComponents) // ?q=&category=&lab=&page=&size=
		comps.GET("/lab/:labName", compCtl.ListComponentsByLab)
		comps.GET("/:id", compCtl.GetComponent)
		comps.PUT("/:id", compCtl.UpdateComponent)
		comps.DELETE("/:id", compCtl.DeleteComponent)
	}

	// ------------------------------
	// 领用/归还流水
	// ------------------------------
	txs := r.Group("/api/transactions", authMW, seenMW)
	{
		txs.POST("", txCtl.CreateTransaction) // type=issue|return
		txs.GET("", txCtl.ListTransactions)
		txs.GET("/overdue", txCtl.ListOverdue)
		txs.GET("/:id", txCtl.GetTransaction)
		txs.PUT("/:id", txCtl.UpdateTransaction)
		txs.DELETE("/:id", txCtl.DeleteTransaction)
	}

	// ------------------------------
	// 批量导入 / 导出
	// ------------------------------
	bulk := r.Group("/api", authMW, seenMW)
	{
		bulk.POST("/import-components", importCtl.ImportComponents)
		bulk.GET("/export-components", compCtl.ExportComponents) // ?format=csv|xlsx
	}

	// ------------------------------
	// 仪表盘
	// ------------------------------
	dash := r.Group("/api/dashboard", authMW, seenMW)
	{
		dash.GET("/stats", dashCtl.GetStats)
	}
}
