package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/cover-planner-api/api/swagger"
	"github.com/noah-isme/cover-planner-api/internal/handler"
	"github.com/noah-isme/cover-planner-api/internal/ingest"
	"github.com/noah-isme/cover-planner-api/internal/middleware"
	"github.com/noah-isme/cover-planner-api/internal/repository"
	"github.com/noah-isme/cover-planner-api/internal/service"
	"github.com/noah-isme/cover-planner-api/pkg/cache"
	"github.com/noah-isme/cover-planner-api/pkg/config"
	"github.com/noah-isme/cover-planner-api/pkg/database"
	"github.com/noah-isme/cover-planner-api/pkg/jobs"
	"github.com/noah-isme/cover-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/cover-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cover-planner-api/pkg/middleware/requestid"
)

// @title Cover Planner API
// @version 0.1.0
// @description Timetable ingestion and cover availability for school operations
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
	} else {
		redisClient = client
	}

	teacherRepo := repository.NewTeacherRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	engine := ingest.NewEngine(logr)
	pool := jobs.NewPool(cfg.Upload.WorkerCount, logr)

	scheduleSvc := service.NewScheduleService(teacherRepo, slotRepo, engine, pool, cacheRepo, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, slotRepo, logr)
	absenceSvc := service.NewAbsenceService(absenceRepo, teacherRepo, logr)
	coverSvc := service.NewCoverService(absenceRepo, slotRepo, teacherRepo, logr)
	exportSvc := service.NewExportService(coverSvc, logr)
	dashboardSvc := service.NewDashboardService(
		teacherRepo, slotRepo, absenceRepo, cacheRepo,
		cfg.Dashboard.CacheEnabled && redisClient != nil,
		cfg.Dashboard.CacheTTL, logr,
	)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, metricsSvc, cfg.Upload)
	teacherHandler := handler.NewTeacherHandler(teacherSvc)
	absenceHandler := handler.NewAbsenceHandler(absenceSvc, coverSvc, exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", readiness(db.PingContext, redisClient))
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule/upload", scheduleHandler.Upload)

		api.GET("/teachers", teacherHandler.List)
		api.GET("/teachers/:id", teacherHandler.Get)
		api.GET("/teachers/:id/schedule", teacherHandler.Schedule)

		api.POST("/absences", absenceHandler.Create)
		api.POST("/absences/batch", absenceHandler.CreateBatch)
		api.GET("/absences", absenceHandler.List)
		api.GET("/absences/:id", absenceHandler.Get)
		api.GET("/absences/:id/available-teachers", absenceHandler.AvailableTeachers)
		api.GET("/absences/:id/cover-sheet", absenceHandler.CoverSheet)

		api.GET("/dashboard", dashboardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func readiness(pingDB func(ctx context.Context) error, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pingDB(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database"})
			return
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
