package http

import (
	"log/slog"

	"github.com/geocoder89/fittrack/internal/config"
	"github.com/geocoder89/fittrack/internal/http/handlers"
	"github.com/geocoder89/fittrack/internal/http/middlewares"
	"github.com/geocoder89/fittrack/internal/observability"
	"github.com/geocoder89/fittrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "fittrack-api"

type Deps struct {
	Logger   *slog.Logger
	Config   config.Config
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Tokens   middlewares.TokenVerifier
	Services *service.Services
	Ready    map[string]handlers.Pinger

	// Health is optional; set it to drain readiness on shutdown.
	Health *handlers.HealthHandler
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(d.Config.TrustedProxyList()); err != nil {
		d.Logger.Error("ignoring invalid trusted proxies", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(serviceName))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(d.Logger))
	r.Use(middlewares.SecurityHeaders(d.Config.IsProd()))
	r.Use(middlewares.CORSMiddleware(d.Config.AllowedOrigins()))
	r.Use(middlewares.MaxBodyBytes(d.Config.MaxBodyBytes))

	// health + ops
	health := d.Health
	if health == nil {
		health = handlers.NewHealthHandler(d.Ready)
	}
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	svc := d.Services
	authHandler := handlers.NewAuthHandler(svc.Auth)
	profileHandler := handlers.NewProfileHandler(svc.Users)
	workoutsHandler := handlers.NewWorkoutsHandler(svc.Workouts)
	nutritionHandler := handlers.NewNutritionHandler(svc.Nutrition)
	goalsHandler := handlers.NewGoalsHandler(svc.Goals)
	progressHandler := handlers.NewProgressHandler(svc.Progress)
	foodsHandler := handlers.NewFoodsHandler(svc.Foods)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON())

	// auth routes are public and rate limited per client IP
	authRoutes := api.Group("/auth")
	if d.Config.AuthRateLimitRPS > 0 {
		limiter := middlewares.NewRateLimiter(d.Config.AuthRateLimitRPS, d.Config.AuthRateLimitBurst)
		authRoutes.Use(limiter.Middleware(middlewares.KeyByIP))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// reference data
	api.GET("/nutrition/foods", foodsHandler.Search)

	authMW := middlewares.NewAuthMiddleware(d.Tokens)
	protected := api.Group("", authMW.RequireAuth())

	protected.GET("/user/profile", profileHandler.Get)
	protected.PUT("/user/profile", profileHandler.Update)
	protected.DELETE("/user/profile", profileHandler.Delete)

	protected.GET("/workouts", workoutsHandler.List)
	protected.POST("/workouts", workoutsHandler.Create)
	protected.PUT("/workouts/:id", workoutsHandler.Update)
	protected.DELETE("/workouts/:id", workoutsHandler.Delete)

	protected.GET("/nutrition", nutritionHandler.List)
	protected.POST("/nutrition", nutritionHandler.Create)
	protected.PUT("/nutrition/:id", nutritionHandler.Update)
	protected.DELETE("/nutrition/:id", nutritionHandler.Delete)

	protected.GET("/goals", goalsHandler.List)
	protected.POST("/goals", goalsHandler.Create)
	protected.PUT("/goals/:id", goalsHandler.Update)
	protected.DELETE("/goals/:id", goalsHandler.Delete)

	protected.GET("/progress", progressHandler.List)
	protected.POST("/progress", progressHandler.Create)
	protected.PUT("/progress/:id", progressHandler.Update)
	protected.DELETE("/progress/:id", progressHandler.Delete)

	protected.GET("/dashboard/stats", dashboardHandler.Stats)

	return r
}
