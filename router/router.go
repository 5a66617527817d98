package router

import (
	"net/http"
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/metrics"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "fintrack",
		})
	})

	r.GET("/metrics", metrics.Handler())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	emailService := service.NewEmailService(&cfg.Email)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.APIRateLimit(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window()))
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		loginLimit := middleware.LoginRateLimit(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow())
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", loginLimit, authHandler.Signup)
			auth.POST("/login", loginLimit, authHandler.Login)
		}

		// 支出类别（无需登录）
		v1.GET("/categories", api.NewCategoryHandler().List)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/me", authHandler.Me)
			authorized.DELETE("/auth/account", authHandler.DeleteAccount)

			expenseHandler := api.NewExpenseHandler()
			expenses := authorized.Group("/expenses")
			{
				expenses.GET("", expenseHandler.List)
				expenses.POST("", expenseHandler.Create)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			incomeHandler := api.NewIncomeHandler()
			income := authorized.Group("/income")
			{
				income.GET("", incomeHandler.List)
				income.POST("", incomeHandler.Create)
				income.DELETE("/:id", incomeHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler()
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Set)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			analyticsHandler := api.NewAnalyticsHandler(cfg, emailService)
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/summary", analyticsHandler.Summary)
				analytics.GET("/category-breakdown", analyticsHandler.CategoryBreakdown)
				analytics.GET("/monthly-trend", analyticsHandler.MonthlyTrend)
				analytics.GET("/ai-recommendations", analyticsHandler.Recommendations)
				analytics.GET("/budget-vs-actual", analyticsHandler.BudgetVsActual)
				analytics.GET("/report", analyticsHandler.Report)
				analytics.POST("/digest", analyticsHandler.Digest)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
			}
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
