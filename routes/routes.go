package routes

import (
	"net/http"

	"nailbook-backend/config"
	"nailbook-backend/controllers"
	"nailbook-backend/metrics"
	"nailbook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Appointments *controllers.AppointmentController
	Services     *controllers.ServiceController
	NailTechs    *controllers.NailTechController
	Reports      *controllers.ReportController
	Dashboard    *controllers.DashboardController
	Reminders    *controllers.ReminderController
	Auth         *controllers.AuthController
	Health       *controllers.HealthController
}

func SetupRouter(cfg *config.Config, log *zap.Logger, h Controllers) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Use(utils.RequestID(log))
	r.Use(config.PerformanceLogger(cfg.Server.SlowRequest))
	r.Use(metrics.NewHTTPMetrics(cfg.ServiceName).Middleware())

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.GetPrometheusHandler()))

	r.POST("/webhooks/identity", h.Auth.IdentityWebhook)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(utils.AuthOptions{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	}))
	api.Use(utils.RequestTimeout(cfg.Server.RequestTimeout))
	{
		api.GET("/me", h.Auth.Me)

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", h.Appointments.CreateAppointment)
			appointments.GET("", h.Appointments.GetAppointments)
			appointments.GET("/slots", h.Appointments.GetSlots)
			appointments.PATCH("/:id", h.Appointments.UpdateAppointmentStatus)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", h.Services.CreateService)
			services.GET("", h.Services.GetServices)
			services.GET("/:id", h.Services.GetService)
			services.PATCH("/:id", h.Services.UpdateService)
			services.DELETE("/:id", h.Services.DeleteService)
		}

		// Nail tech routes
		techs := api.Group("/nail-techs")
		{
			techs.GET("", h.NailTechs.GetNailTechs)
			techs.POST("", h.NailTechs.CreateNailTech)
		}

		// Analytics routes
		analytics := api.Group("/analytics")
		{
			analytics.GET("/revenue", h.Reports.GetRevenue)
			analytics.GET("/summary", h.Reports.GetAnalyticsSummary)
		}

		api.GET("/dashboard", h.Dashboard.GetDashboardOverview)

		// Reminder routes
		reminders := api.Group("/reminders")
		{
			reminders.GET("", h.Reminders.GetReminderLogs)
			reminders.POST("/run", h.Reminders.SendReminders)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	})

	return r
}
