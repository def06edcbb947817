package main

import (
	"fmt"
	"log"
	"os"

	"ispnet-backend/config"
	"ispnet-backend/models"
	"ispnet-backend/routes"
	"ispnet-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.IdentityUser{},
		&models.Customer{},
		&models.Position{},
		&models.Employee{},
		&models.CoverageZone{},
		&models.ServicePlan{},
		&models.Contract{},
		&models.Payment{},
		&models.Equipment{},
		&models.EquipmentUnit{},
		&models.ContractEquipment{},
		&models.InstallationOrder{},
		&models.NotificationLog{},
	)
}

func main() {
	reminder := services.NewReminderService(config.DB)
	reminder.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
