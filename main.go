package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"invoicemate-backend/config"
	"invoicemate-backend/models"
	"invoicemate-backend/routes"
	"invoicemate-backend/services"
	"invoicemate-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	utils.SetupLogger()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Project{},
		&models.Milestone{},
		&models.Invoice{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	notifier := services.NewDueDateNotifier(db, services.NewTwilioSender())
	notifier.StartScheduler()
	// Also check once at startup, so a freshly launched instance catches
	// invoices that came due before 9 AM.
	if err := notifier.CheckDueToday(); err != nil {
		log.Error().Err(err).Msg("startup due-date check failed")
	}

	templateConfigs, err := services.LoadTemplateConfigs(os.Getenv("TEMPLATE_CONFIG"))
	if err != nil {
		log.Warn().Err(err).Msg("invoice templates unavailable, export disabled")
		templateConfigs = nil
	}
	exporter := services.NewInvoiceExporter(db, templateConfigs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db, exporter)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
