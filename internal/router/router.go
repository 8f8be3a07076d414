// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/config"
	"github.com/firenoc/firenoc-backend/internal/handlers"
	"github.com/firenoc/firenoc-backend/internal/middleware"
	"github.com/firenoc/firenoc-backend/internal/models"
	"github.com/firenoc/firenoc-backend/internal/services"
	"github.com/firenoc/firenoc-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	numberingService := services.NewNumberingService(db)
	notificationService := services.NewNotificationService(db, cfg.Email)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg.JWT)
	applicationService := services.NewApplicationService(db, numberingService, notificationService, cfg.Frontend.BaseURL)
	verificationService := services.NewVerificationService(db)
	grievanceService := services.NewGrievanceService(db, numberingService, notificationService)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, db)
	inspectionHandler := handlers.NewInspectionHandler(applicationService, adminService, storageService, db)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	grievanceHandler := handlers.NewGrievanceHandler(grievanceService, db)
	userHandler := handlers.NewUserHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService, applicationService, verificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
			auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
		}

		// Public certificate verification, rate limited but unauthenticated
		verify := v1.Group("/verify")
		verify.Use(middleware.VerifyRateLimit())
		{
			verify.GET("/:number", verificationHandler.VerifyNOC)
		}

		// Application routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.GET("/:id", applicationHandler.GetApplication)
			applications.POST("/:id/review", middleware.StaffRequired(db), applicationHandler.StartReview)
		}

		// Inspection routes, staff only except the public slot listing
		inspections := v1.Group("/inspections")
		{
			inspections.GET("/slots", inspectionHandler.ListTimeSlots)

			staff := inspections.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired(db))
			{
				staff.GET("", inspectionHandler.ListInspections)
				staff.GET("/:id", inspectionHandler.GetInspection)
				staff.POST("/schedule", inspectionHandler.ScheduleInspection)
				staff.POST("/complete", inspectionHandler.CompleteInspection)
				staff.POST("/:id/photos", middleware.UploadRateLimit(), inspectionHandler.UploadPhotos)
			}
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Grievance routes
		grievances := v1.Group("/grievances")
		grievances.Use(middleware.AuthRequired())
		{
			grievances.POST("", grievanceHandler.CreateGrievance)
			grievances.GET("", grievanceHandler.ListGrievances)
			grievances.POST("/resolve", middleware.StaffRequired(db), grievanceHandler.ResolveGrievance)
			grievances.POST("/:id/feedback", grievanceHandler.SubmitFeedback)
		}

		// User self-service routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.DELETE("/account", userHandler.DeleteAccount)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(db))
		{
			admin.GET("/dashboard", adminHandler.GetDashboardStats)

			adminApplications := admin.Group("/applications")
			{
				adminApplications.POST("/decision", adminHandler.DecideApplication)
				adminApplications.POST("/:id/compliance", adminHandler.MarkRequiresCompliance)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.ListUsers)
				adminUsers.POST("/:id/roles", adminHandler.AssignRole)
				adminUsers.DELETE("/:id/roles/:role", adminHandler.RevokeRole)
			}

			adminNOCs := admin.Group("/nocs")
			{
				adminNOCs.POST("/:number/revoke", adminHandler.RevokeNOC)
			}
		}

		// Reference data
		v1.GET("/building-categories", getBuildingCategoriesHandler)
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

func getBuildingCategoriesHandler(c *gin.Context) {
	categories := []models.BuildingCategory{
		models.BuildingCategoryResidential,
		models.BuildingCategoryCommercial,
		models.BuildingCategoryHospital,
		models.BuildingCategorySchool,
		models.BuildingCategoryFactory,
		models.BuildingCategoryMall,
		models.BuildingCategoryHotel,
		models.BuildingCategoryWarehouse,
		models.BuildingCategoryOffice,
		models.BuildingCategoryMixedUse,
		models.BuildingCategoryOther,
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}
