package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"invoicemate-backend/config"
	"invoicemate-backend/controllers"
	"invoicemate-backend/services"
	"invoicemate-backend/utils"
)

func SetupRouter(db *gorm.DB, exporter *services.InvoiceExporter) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger())

	authController := &controllers.AuthController{DB: db}
	customerController := &controllers.CustomerController{DB: db}
	projectController := &controllers.ProjectController{DB: db}
	invoiceController := &controllers.InvoiceController{DB: db, Exporter: exporter}
	dashboardController := &controllers.DashboardController{DB: db}
	dataController := &controllers.DataController{DB: db}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", customerController.CreateCustomer)
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
		}

		// Project routes
		projects := api.Group("/projects")
		{
			projects.POST("", projectController.CreateProject)
			projects.GET("", projectController.GetProjects)
			projects.PUT("", projectController.UpdateProject)
			projects.GET("/:projectId/milestones", projectController.GetMilestones)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", invoiceController.CreateInvoices)
			invoices.PUT("/:milestoneId/pay", invoiceController.PayInvoice)
			invoices.POST("/export", invoiceController.ExportInvoice)
		}

		// Dashboard routes
		api.GET("/dashboard/summary", dashboardController.GetSummary)
		api.GET("/dashboard/invoices", dashboardController.GetInvoiceTimeSeries)
		api.GET("/dashboard/status", dashboardController.GetInvoiceStatusBreakdown)

		// Full data dump for the overview screens
		api.GET("/data", dataController.GetAllData)
	}

	return r
}
