package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/audit"
	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/handlers"
	"github.com/glowdesk/salon-platform/internal/infra/cache"
	infraRepo "github.com/glowdesk/salon-platform/internal/infra/repository"
	"github.com/glowdesk/salon-platform/internal/middleware"
	ucAppointment "github.com/glowdesk/salon-platform/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	locationLister := cache.NewCachedLocationLister(
		rdb,
		appointmentRepo,
		cfg.LocationCacheTTL,
		log,
	)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// USE CASES — RECURRING SERIES
	// ======================================================
	createSeriesUC := ucAppointment.NewCreateSeries(
		appointmentRepo,
		auditDispatcher,
	)

	cancelSeriesUC := ucAppointment.NewCancelSeries(
		appointmentRepo,
		auditDispatcher,
	)

	listSeriesUC := ucAppointment.NewListSeries(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db, cfg)
	locationHandler := handlers.NewLocationHandler(db, cfg, locationLister)

	serviceHandler := handlers.NewServiceHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, cfg)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cfg,
		locationLister,
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		confirmAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)

	seriesHandler := handlers.NewSeriesHandler(
		db,
		cfg,
		locationLister,
		createSeriesUC,
		cancelSeriesUC,
		listSeriesUC,
	)

	icalHandler := handlers.NewICalHandler(db, cfg, locationLister)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	adminHandler := handlers.NewAdminHandler(db, locationLister, auditDispatcher)

	publicHandler := handlers.NewPublicHandler(db, createAppointmentUC, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BOOKING
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/locations", locationHandler.List)
			secured.POST("/me/locations", locationHandler.Create)
			secured.PATCH("/me/locations", locationHandler.Update)
			secured.DELETE("/me/locations", locationHandler.Deactivate)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// RECURRING SERIES
			// ------------------------------
			secured.POST("/me/appointments/series", seriesHandler.Create)
			secured.DELETE("/me/appointments/series", seriesHandler.Cancel)
			secured.GET("/me/appointments/series/:id", seriesHandler.List)
			secured.GET("/me/appointments/series/:id/ics", icalHandler.ExportSeries)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// PLATFORM ADMIN CONSOLE
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequirePlatformAdmin())
		{
			admin.GET("/businesses", adminHandler.ListBusinesses)
			admin.GET("/clients", adminHandler.ListClients)
			admin.GET("/appointments", adminHandler.ListAppointments)
		}
	}
}
