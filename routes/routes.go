package routes

import (
	"os"
	"strings"

	"ispnet-backend/config"
	"ispnet-backend/controllers"
	"ispnet-backend/services"
	"ispnet-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	guard := services.NewAccountGuard(config.DB)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(), guard.Middleware())
	{
		// Customer self-service payment lookup
		api.GET("/payments/lookup", controllers.LookupPayments)
		api.GET("/payments/:id", controllers.GetPayment)
		api.POST("/payments/:id/pay", controllers.ProcessPayment)

		// Contract routes (customers see only their own)
		contracts := api.Group("/contracts")
		{
			contracts.GET("", controllers.GetContracts)
			contracts.GET("/:id", controllers.GetContract)
		}

		admin := api.Group("")
		admin.Use(utils.RequireRole(services.RoleAdministrator, services.RoleEmployee))
		{
			// Customer routes
			customers := admin.Group("/customers")
			{
				customers.POST("", controllers.CreateCustomer)
				customers.GET("", controllers.GetCustomers)
				customers.GET("/:id", controllers.GetCustomer)
				customers.PUT("/:id", controllers.UpdateCustomer)
				customers.PUT("/:id/disable", controllers.DisableCustomer)
				customers.PUT("/:id/enable", controllers.EnableCustomer)
				customers.DELETE("/:id", controllers.DeleteCustomer)
			}

			// Zone routes
			zones := admin.Group("/zones")
			{
				zones.GET("", controllers.GetZones)
				zones.POST("", controllers.CreateZone)
				zones.PUT("/:id", controllers.UpdateZone)
				zones.DELETE("/:id", controllers.DeleteZone)
			}

			// Plan routes
			plans := admin.Group("/plans")
			{
				plans.GET("", controllers.GetPlans)
				plans.POST("", controllers.CreatePlan)
				plans.GET("/check-name", controllers.CheckPlanName)
				plans.PUT("/:id", controllers.UpdatePlan)
				plans.PUT("/:id/disable", controllers.DisablePlan)
				plans.PUT("/:id/enable", controllers.EnablePlan)
			}

			// Contract management
			admin.POST("/contracts", controllers.CreateContract)
			admin.PUT("/contracts/:id", controllers.UpdateContract)
			admin.PUT("/contracts/:id/disable", controllers.DisableContract)
			admin.PUT("/contracts/:id/enable", controllers.EnableContract)
			admin.DELETE("/contracts/:id", controllers.DeleteContract)
			admin.GET("/contracts/:id/has-payments", controllers.ContractHasPayments)

			// Payment administration
			admin.GET("/payments", controllers.GetPayments)
			admin.DELETE("/payments/:id", controllers.DeletePayment)

			// Equipment catalog routes
			equipment := admin.Group("/equipment")
			{
				equipment.GET("", controllers.GetEquipment)
				equipment.POST("", controllers.CreateEquipment)
				equipment.GET("/:id", controllers.GetEquipmentItem)
				equipment.PUT("/:id", controllers.UpdateEquipment)
				equipment.PUT("/:id/deplete", controllers.DepleteEquipment)
				equipment.PUT("/:id/increase-stock", controllers.IncreaseStock)
				equipment.PUT("/:id/decrease-stock", controllers.DecreaseStock)
				equipment.GET("/:id/available-units", controllers.GetAvailableUnits)
				equipment.DELETE("/:id", controllers.DeleteEquipment)
			}

			// Assignment routes
			assignments := admin.Group("/assignments")
			{
				assignments.GET("", controllers.GetAssignments)
				assignments.POST("", controllers.AssignEquipment)
				assignments.PUT("/:id/state", controllers.UpdateAssignmentState)
			}

			// Installation order routes
			installations := admin.Group("/installations")
			{
				installations.GET("", controllers.GetInstallations)
				installations.POST("", controllers.CreateInstallation)
				installations.GET("/:id", controllers.GetInstallation)
				installations.PUT("/:id", controllers.UpdateInstallation)
				installations.PUT("/:id/cancel", controllers.CancelInstallation)
			}

			// Employee routes are admin-only
			employees := admin.Group("/employees", utils.RequireRole(services.RoleAdministrator))
			{
				employees.GET("", controllers.GetEmployees)
				employees.POST("", controllers.AddEmployee)
				employees.GET("/:id", controllers.GetEmployee)
				employees.PUT("/:id", controllers.UpdateEmployee)
				employees.PUT("/:id/disable", controllers.DisableEmployee)
				employees.PUT("/:id/enable", controllers.EnableEmployee)
				employees.DELETE("/:id", controllers.DeleteEmployee)
			}

			positions := admin.Group("/positions", utils.RequireRole(services.RoleAdministrator))
			{
				positions.GET("", controllers.GetPositions)
				positions.POST("", controllers.CreatePosition)
				positions.PUT("/:id", controllers.UpdatePosition)
			}

			// Dashboard route
			admin.GET("/dashboard", controllers.GetDashboard)
		}
	}

	return r
}
