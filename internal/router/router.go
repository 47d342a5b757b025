package router

import (
	"net/http"
	"time"

	"expense-tracker-backend/internal/config"
	"expense-tracker-backend/internal/handler"
	"expense-tracker-backend/internal/middleware"
	"expense-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires services, middleware and routes into a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "expense-tracker-backend",
		})
	})

	identity := service.NewIdentity(db, cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpireHours)*time.Hour, cfg.Security.BcryptCost)
	categories := service.NewCategories(db)
	transactions := service.NewTransactions(db, categories)
	reports := service.NewReports(db)
	expenses := service.NewExpenses(db)

	api := r.Group("/api")
	api.Use(middleware.AuditMiddleware(db))

	userHandler := handler.NewUserHandler(identity)
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	authRequired := middleware.AuthMiddleware(identity)

	categoryHandler := handler.NewCategoryHandler(categories)
	categoryRoutes := api.Group("/categories")
	categoryRoutes.Use(authRequired)
	categoryRoutes.POST("", categoryHandler.Create)
	categoryRoutes.GET("", categoryHandler.List)
	categoryRoutes.DELETE("/:id", categoryHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(transactions, reports)
	transactionRoutes := api.Group("/transactions")
	transactionRoutes.Use(authRequired)
	transactionRoutes.POST("", transactionHandler.Create)
	transactionRoutes.GET("", transactionHandler.List)
	transactionRoutes.GET("/summary/category", transactionHandler.SummaryByCategory)
	transactionRoutes.GET("/summary/monthly", transactionHandler.MonthlySummary)
	transactionRoutes.GET("/summary/top-categories", transactionHandler.TopCategories)
	transactionRoutes.GET("/recent", transactionHandler.Recent)
	transactionRoutes.GET("/:id", transactionHandler.Get)
	transactionRoutes.PUT("/:id", transactionHandler.Update)
	transactionRoutes.DELETE("/:id", transactionHandler.Delete)

	// Legacy expense routes, intentionally outside the auth gate.
	expenseHandler := handler.NewExpenseHandler(expenses)
	expenseRoutes := api.Group("/expenses")
	expenseRoutes.POST("", expenseHandler.Create)
	expenseRoutes.GET("", expenseHandler.List)
	expenseRoutes.GET("/user/:userId", expenseHandler.ListByUser)
	expenseRoutes.GET("/:id", expenseHandler.Get)
	expenseRoutes.PUT("/:id", expenseHandler.Update)
	expenseRoutes.DELETE("/:id", expenseHandler.Delete)

	return r
}
