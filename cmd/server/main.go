package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"github.com/ecommerce/backend/internal/infrastructure/auth"
	"github.com/ecommerce/backend/internal/infrastructure/cache"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/logger"
	"github.com/ecommerce/backend/internal/infrastructure/persistence"
	"github.com/ecommerce/backend/internal/infrastructure/storage"
	"github.com/ecommerce/backend/internal/interfaces/http/dashboard"
	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/ecommerce/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Storefront Backend API
//	@version		1.0
//	@description	E-commerce catalog and account backend with hierarchical categories

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories and per-context transaction managers
	catalogRepos := persistence.NewCatalogRepos(db.DB)
	identityRepos := persistence.NewIdentityRepos(db.DB)
	catalogTx := persistence.NewCatalogTxManager(db)
	identityTx := persistence.NewIdentityTxManager(db)

	// Token blacklist and category tree cache, Redis-backed when enabled
	var tokenBlacklist auth.TokenBlacklist
	var treeCache catalogapp.TreeCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		treeCache = cache.NewRedisTreeCache(redisClient, cfg.Cache.TreeTTL, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		treeCache = cache.NewInMemoryTreeCache(cfg.Cache.TreeTTL)
		log.Info("Redis disabled, using in-process blacklist and tree cache")
	}

	// Blob storage for product and category media
	var objectStorage catalogapp.ObjectStorage
	var stubStorage *storage.StubObjectStorage
	if cfg.Storage.UseStub {
		stubStorage, err = storage.NewStubObjectStorage(cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize stub storage", zap.Error(err))
		}
		objectStorage = stubStorage
		log.Info("Using filesystem stub storage", zap.String("dir", cfg.Storage.StubDir))
	} else {
		s3Storage, err := storage.NewS3ObjectStorage(cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Using S3 storage", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	categoryService := catalogapp.NewCategoryService(catalogRepos, catalogTx, treeCache)
	brandService := catalogapp.NewBrandService(catalogRepos, catalogTx)
	productService := catalogapp.NewProductService(catalogRepos, catalogTx)
	variantService := catalogapp.NewVariantService(catalogRepos, catalogTx)
	attributeService := catalogapp.NewAttributeService(catalogRepos, catalogTx)
	reviewService := catalogapp.NewReviewService(catalogRepos, catalogTx)
	mediaService := catalogapp.NewMediaService(catalogRepos, catalogTx, objectStorage)
	dependencyGuard := catalogapp.NewDependencyGuard(catalogRepos)
	authService := identityapp.NewAuthService(identityRepos, identityTx, jwtService, tokenBlacklist, log)
	userService := identityapp.NewUserService(identityRepos, identityTx, tokenBlacklist, log)
	addressService := identityapp.NewAddressService(identityRepos, identityTx)

	// HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	brandHandler := handler.NewBrandHandler(brandService)
	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	attributeHandler := handler.NewAttributeHandler(attributeService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, security
	// headers, CORS, body limit, then optional rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db))
	engine.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Local media endpoints backing the stub storage in development
	if stubStorage != nil {
		engine.Static("/media", cfg.Storage.StubDir)
		engine.PUT("/media/*key", func(c *gin.Context) {
			key := strings.TrimPrefix(c.Param("key"), "/")
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.Status(http.StatusBadRequest)
				return
			}
			if err := stubStorage.Put(c.Request.Context(), key, data); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			c.Status(http.StatusOK)
		})
	}

	// Admin dashboard (cookie session, server-rendered pages)
	engine.LoadHTMLGlob("web/templates/*.html")
	dashboardHandler := dashboard.NewHandler(
		categoryService, brandService, productService, dependencyGuard,
		authService, jwtService, cfg.Cookie, log,
	)
	dashboardHandler.RegisterRoutes(engine)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRequired := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})
	staffOnly := middleware.StaffOnly()

	// Catalog domain: reads are public (claims extracted when present so
	// staff can see unapproved reviews), mutations are staff-only
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.Use(middleware.OptionalJWTAuthMiddleware(jwtService))

	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.GET("/categories/tree", categoryHandler.GetTree)
	catalogRoutes.GET("/categories/roots", categoryHandler.GetRoots)
	catalogRoutes.GET("/categories/by-path/*path", categoryHandler.GetByPath)
	catalogRoutes.GET("/categories/:id", categoryHandler.GetByID)
	catalogRoutes.GET("/categories/:id/children", categoryHandler.GetChildren)
	catalogRoutes.GET("/categories/:id/breadcrumb", categoryHandler.GetBreadcrumb)
	catalogRoutes.POST("/categories", authRequired, staffOnly, categoryHandler.Create)
	catalogRoutes.PUT("/categories/:id", authRequired, staffOnly, categoryHandler.Update)
	catalogRoutes.POST("/categories/:id/move", authRequired, staffOnly, categoryHandler.Move)
	catalogRoutes.POST("/categories/:id/activate", authRequired, staffOnly, categoryHandler.Activate)
	catalogRoutes.POST("/categories/:id/deactivate", authRequired, staffOnly, categoryHandler.Deactivate)
	catalogRoutes.DELETE("/categories/:id", authRequired, staffOnly, categoryHandler.Delete)

	catalogRoutes.GET("/brands", brandHandler.List)
	catalogRoutes.GET("/brands/by-slug/:slug", brandHandler.GetBySlug)
	catalogRoutes.GET("/brands/:id", brandHandler.GetByID)
	catalogRoutes.POST("/brands", authRequired, staffOnly, brandHandler.Create)
	catalogRoutes.PUT("/brands/:id", authRequired, staffOnly, brandHandler.Update)
	catalogRoutes.POST("/brands/:id/activate", authRequired, staffOnly, brandHandler.Activate)
	catalogRoutes.POST("/brands/:id/deactivate", authRequired, staffOnly, brandHandler.Deactivate)
	catalogRoutes.DELETE("/brands/:id", authRequired, staffOnly, brandHandler.Delete)

	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/by-slug/:slug", productHandler.GetBySlug)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/:id/related", productHandler.GetRelated)
	catalogRoutes.GET("/products/:id/variants", variantHandler.ListByProduct)
	catalogRoutes.POST("/products", authRequired, staffOnly, productHandler.Create)
	catalogRoutes.PUT("/products/:id", authRequired, staffOnly, productHandler.Update)
	catalogRoutes.POST("/products/:id/activate", authRequired, staffOnly, productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", authRequired, staffOnly, productHandler.Deactivate)
	catalogRoutes.DELETE("/products/:id", authRequired, staffOnly, productHandler.Delete)

	catalogRoutes.GET("/variants/:id", variantHandler.GetByID)
	catalogRoutes.POST("/variants", authRequired, staffOnly, variantHandler.Create)
	catalogRoutes.PUT("/variants/:id", authRequired, staffOnly, variantHandler.Update)
	catalogRoutes.POST("/variants/:id/activate", authRequired, staffOnly, variantHandler.Activate)
	catalogRoutes.POST("/variants/:id/deactivate", authRequired, staffOnly, variantHandler.Deactivate)
	catalogRoutes.DELETE("/variants/:id", authRequired, staffOnly, variantHandler.Delete)

	catalogRoutes.GET("/attributes", attributeHandler.List)
	catalogRoutes.GET("/attributes/:id", attributeHandler.GetByID)
	catalogRoutes.POST("/attributes", authRequired, staffOnly, attributeHandler.Create)
	catalogRoutes.PUT("/attributes/:id", authRequired, staffOnly, attributeHandler.Update)
	catalogRoutes.DELETE("/attributes/:id", authRequired, staffOnly, attributeHandler.Delete)
	catalogRoutes.POST("/attributes/:id/values", authRequired, staffOnly, attributeHandler.AddValue)
	catalogRoutes.DELETE("/attribute-values/:valueId", authRequired, staffOnly, attributeHandler.DeleteValue)

	catalogRoutes.GET("/products/by-slug/:slug/reviews", reviewHandler.ListByProduct)
	catalogRoutes.POST("/products/by-slug/:slug/reviews", authRequired, reviewHandler.Submit)
	catalogRoutes.POST("/reviews/:id/approve", authRequired, staffOnly, reviewHandler.Approve)
	catalogRoutes.POST("/reviews/:id/reject", authRequired, staffOnly, reviewHandler.Reject)
	catalogRoutes.DELETE("/reviews/:id", authRequired, reviewHandler.Delete)

	catalogRoutes.GET("/media", authRequired, staffOnly, mediaHandler.ListByOwner)
	catalogRoutes.POST("/media/upload-url", authRequired, staffOnly, mediaHandler.IssueUploadURL)
	catalogRoutes.POST("/media/:id/confirm", authRequired, staffOnly, mediaHandler.ConfirmUpload)
	catalogRoutes.POST("/media/:id/primary", authRequired, staffOnly, mediaHandler.SetPrimary)
	catalogRoutes.DELETE("/media/:id", authRequired, staffOnly, mediaHandler.Delete)

	// Auth domain: register/login/refresh are public, the rest requires a
	// valid access token
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.POST("/logout-all", authHandler.LogoutAll)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// Account domain: the authenticated user's own profile, addresses and
	// reviews
	accountRoutes := router.NewDomainGroup("account", "/account")
	accountRoutes.Use(authRequired)
	accountRoutes.GET("/profile", userHandler.GetProfile)
	accountRoutes.PUT("/profile", userHandler.UpdateProfile)
	accountRoutes.PUT("/avatar", userHandler.SetAvatar)
	accountRoutes.GET("/addresses", addressHandler.List)
	accountRoutes.POST("/addresses", addressHandler.Create)
	accountRoutes.GET("/addresses/:id", addressHandler.Get)
	accountRoutes.PUT("/addresses/:id", addressHandler.Update)
	accountRoutes.POST("/addresses/:id/default", addressHandler.SetDefault)
	accountRoutes.DELETE("/addresses/:id", addressHandler.Delete)
	accountRoutes.GET("/reviews", reviewHandler.ListMine)

	// Admin domain: staff-only user management
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(authRequired, staffOnly)
	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.POST("/users/:id/activate", userHandler.Activate)
	adminRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)
	adminRoutes.POST("/users/:id/grant-staff", userHandler.GrantStaff)
	adminRoutes.POST("/users/:id/revoke-staff", userHandler.RevokeStaff)

	// System domain: public info and ping
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(authRoutes).
		Register(accountRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
