package routes

import (
	"net/http"

	"lesson-planner/internal/config"
	"lesson-planner/internal/delivery/http/handler"
	"lesson-planner/internal/events"
	"lesson-planner/internal/export"
	"lesson-planner/internal/infrastructure/database"
	"lesson-planner/internal/logger"
	"lesson-planner/internal/mailer"
	"lesson-planner/internal/middleware"
	"lesson-planner/internal/usecase/lessonplan"
	"lesson-planner/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

// Dependencies are the collaborators the server wires from outside the
// HTTP layer. Nil fields get a local default.
type Dependencies struct {
	Publisher   events.Publisher
	Mailer      mailer.Mailer
	RateLimiter *middleware.RateLimiter
}

func SetupRoutes(cfg *config.Config, db *database.DB, deps Dependencies) *gin.Engine {
	switch cfg.Server.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if deps.Publisher == nil {
		deps.Publisher = events.LogPublisher{}
	}
	if deps.Mailer == nil {
		deps.Mailer = mailer.New(cfg.SMTP)
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = middleware.NewRateLimiterFromConfig(cfg.RateLimit)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestBytes))
	router.Use(middleware.RateLimitMiddleware(deps.RateLimiter))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	sessions := middleware.NewSessionStore(cfg.Session)

	userRepository := database.NewUserRepository(db)
	userService := user.NewService(userRepository, deps.Mailer, cfg)
	authHandler := handler.NewAuthHandler(userService, sessions)

	exporter := export.NewExporter(
		export.NewPDFRenderer(cfg.Export.PDFEnabled),
		export.NewDOCXRenderer(cfg.Export.DOCXEnabled),
	)
	lessonPlanRepository := database.NewLessonPlanRepository(db)
	lessonPlanService := lessonplan.NewService(lessonPlanRepository, exporter, deps.Publisher)
	lessonPlanHandler := handler.NewLessonPlanHandler(lessonPlanService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			authHandler.RegisterProfileRoutes(protected)
			lessonPlanHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
