package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/careerconnect/connect-client/config"
	"github.com/careerconnect/connect-client/internal/cache"
	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/internal/handlers"
	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/careerconnect/connect-client/pkg/httpclient"
	"github.com/careerconnect/connect-client/pkg/jwt"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/careerconnect/connect-client/pkg/profiling"
	"github.com/careerconnect/connect-client/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// appHandlers groups every view handler registered on the router
type appHandlers struct {
	auth        *handlers.AuthHandler
	dashboard   *handlers.DashboardHandler
	profile     *handlers.ProfileHandler
	connections *handlers.ConnectionHandler
	messages    *handlers.MessageHandler
	skills      *handlers.SkillHandler
	stories     *handlers.StoryHandler
	resources   *handlers.ResourceHandler
	jobs        *handlers.JobHandler
}

const (
	jsonBodyLimit   = 1 << 20
	uploadBodyLimit = 6 << 20
)

// view returns a route group guarded by rule. Handlers registered on the
// group run only for sessions the rule admits.
func view(router *gin.Engine, rule guard.Rule) *gin.RouterGroup {
	return router.Group("", middleware.GuardMiddleware(rule))
}

// registerPublicRoutes registers the landing page, login, registration and logout
func registerPublicRoutes(router *gin.Engine, h appHandlers, authRateLimiter *middleware.RateLimiter) {
	router.GET(guard.LandingPath, h.auth.Home)
	router.POST(guard.LoginPath, authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), h.auth.Login)
	router.POST("/register", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(uploadBodyLimit), h.auth.Register)
	router.POST("/logout", h.auth.Logout)
}

// registerViewRoutes registers every protected view
func registerViewRoutes(router *gin.Engine, h appHandlers, writeRateLimiter *middleware.RateLimiter) {
	jsonBody := middleware.BodySizeLimitMiddleware(jsonBodyLimit)
	limited := writeRateLimiter.Middleware()

	// Dashboards
	view(router, guard.RoleOnly(guard.StudentDashboardPath, models.RoleStudent)).
		GET(guard.StudentDashboardPath, h.dashboard.Dashboard)
	view(router, guard.RoleOnly(guard.MentorDashboardPath, models.RoleMentor)).
		GET(guard.MentorDashboardPath, h.dashboard.Dashboard)

	admin := view(router, guard.RoleOnly(guard.AdminDashboardPath, models.RoleAdmin))
	admin.GET(guard.AdminDashboardPath, h.dashboard.Dashboard)
	admin.GET("/admindashboard/skills", h.skills.Catalog)
	admin.POST("/admindashboard/skills", jsonBody, h.skills.AddSkill)
	admin.DELETE("/admindashboard/skills/:skillId", h.skills.DeleteSkill)

	// Profile
	profile := view(router, guard.Authenticated("/editprofile"))
	profile.GET("/editprofile/:id", h.profile.GetProfile)
	profile.PUT("/editprofile/:id", limited, jsonBody, h.profile.UpdateProfile)

	// Connections
	connections := view(router, guard.Authenticated("/connections"))
	connections.GET("/connections", h.connections.Explore)
	connections.POST("/connections/:userId", limited, h.connections.SendRequest)
	connections.GET("/requests", h.connections.Requests)
	connections.POST("/requests/:connectionId", jsonBody, h.connections.Decide)
	connections.GET("/myconnections", h.connections.MyConnections)
	connections.DELETE("/myconnections/:connectionId", h.connections.Disconnect)

	// Messaging
	messages := view(router, guard.Authenticated("/messages"))
	messages.GET("/messages", h.messages.Conversations)
	messages.GET("/messages/:peerId", h.messages.Thread)
	messages.POST("/messages/:peerId", limited, jsonBody, h.messages.Send)
	messages.GET("/messages/:peerId/stream", h.messages.Stream)

	// User skills
	skills := view(router, guard.Authenticated("/addskills"))
	skills.GET("/addskills/:id", h.skills.UserSkills)
	skills.POST("/addskills/:id", jsonBody, h.skills.AssignSkill)
	skills.DELETE("/addskills/:id/:skillId", h.skills.RemoveSkill)

	// Stories
	stories := view(router, guard.Authenticated("/stories"))
	stories.GET("/stories", h.stories.List)
	stories.GET("/stories/:id", h.stories.UserStories)
	stories.GET("/story/:storyId", h.stories.Get)
	stories.POST("/addstory", limited, middleware.BodySizeLimitMiddleware(uploadBodyLimit), h.stories.Create)
	stories.GET("/managestories", h.stories.Manage)
	stories.DELETE("/managestories/:storyId", h.stories.Delete)

	// Resources
	view(router, guard.Authenticated("/resources")).GET("/resources", h.resources.List)

	mentorResources := view(router, guard.RoleOnly("/createresource", models.RoleMentor))
	mentorResources.GET("/createresource", h.resources.Form)
	mentorResources.POST("/createresource", jsonBody, h.resources.Create)
	mentorResources.GET("/manageresources", h.resources.Manage)
	mentorResources.DELETE("/manageresources/:resourceId", h.resources.Delete)

	// Jobs
	jobs := view(router, guard.Authenticated("/jobs"))
	jobs.GET("/jobs", h.jobs.List)
	jobs.POST("/jobs", jsonBody, h.jobs.Create)
	jobs.DELETE("/jobs/:jobId", h.jobs.Delete)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CareerConnect web client",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.Server.AppEnv,
		Endpoint:       cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiling, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiling()

	// Backend client shared by every session; requests are scoped per token
	api := backend.NewClient(backend.Config{
		BaseURL:               cfg.Backend.BaseURL,
		DisableCircuitBreaker: cfg.Backend.DisableCircuitBreaker,
	}, httpclient.NewStandardClient(cfg.BackendTimeout()))

	sentRequests := cache.NewSentRequestsCache(cfg.SentRequestsTTL())
	tokenManager := jwt.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer)

	// Initialize services
	authService := services.NewAuthService(api)
	dashboardService := services.NewDashboardService()
	profileService := services.NewProfileService(func(token string) services.ProfileBackend { return api.WithToken(token) })
	connectionService := services.NewConnectionService(
		func(token string) services.ConnectionBackend { return api.WithToken(token) },
		sentRequests,
		cfg.SessionTTL(),
	)
	messagingService := services.NewMessagingService(
		func(token string) messaging.Transport { return api.WithToken(token) },
		cfg.PollInterval(),
	)
	crudBackend := func(token string) crud.Backend { return api.WithToken(token) }
	skillService := services.NewSkillService(crudBackend)
	storyService := services.NewStoryService(func(token string) services.StoryBackend { return api.WithToken(token) })
	resourceService := services.NewResourceService(func(token string) services.ResourceBackend { return api.WithToken(token) })
	jobService := services.NewJobService(crudBackend)

	// Initialize handlers
	h := appHandlers{
		auth:        handlers.NewAuthHandler(authService, connectionService),
		dashboard:   handlers.NewDashboardHandler(dashboardService),
		profile:     handlers.NewProfileHandler(profileService),
		connections: handlers.NewConnectionHandler(connectionService),
		messages:    handlers.NewMessageHandler(messagingService, connectionService),
		skills:      handlers.NewSkillHandler(skillService),
		stories:     handlers.NewStoryHandler(storyService),
		resources:   handlers.NewResourceHandler(resourceService),
		jobs:        handlers.NewJobHandler(jobService),
	}
	healthHandler := handlers.NewHealthHandler(api.Available)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.SessionMiddleware(tokenManager, session.CookieConfig{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	}, cfg.SessionTTL()))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the configured front-ends may call with credentials
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://127.0.0.1:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	rootCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()

	generalRateLimiter := middleware.NewRateLimiter(rootCtx, 100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(rootCtx, 0.2, 5)      // 1 req/5sec, burst of 5 (credential stuffing)
	writeRateLimiter := middleware.NewRateLimiter(rootCtx, 5, 10)      // 5 req/sec, burst of 10

	// Operational endpoints
	ops := router.Group("/api")
	ops.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	ops.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	registerPublicRoutes(router, h, authRateLimiter)
	registerViewRoutes(router, h, writeRateLimiter)

	// WriteTimeout stays zero: conversation streams are long-lived
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
