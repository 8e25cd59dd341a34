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

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"grapevine/backend/internal/auth"
	"grapevine/backend/internal/avatar"
	"grapevine/backend/internal/graph"
	"grapevine/backend/pkg/config"
	"grapevine/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify Neo4j connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Initialize dependencies
	repo := graph.NewRepository(driver, cfg.QueryTimeout)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure graph schema", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	avatars := avatar.NewNormalizer(cfg.AvatarBaseURL)
	identity := auth.NewService(repo, tokens, avatars)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api")
	api.Use(auth.Middleware(tokens))
	{
		// Whether the caller holds a valid session token
		api.GET("/logged-in", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"isLoggedIn": auth.IsLoggedIn(c)})
		})

		// Live entity and relationship counts
		api.GET("/statistics", func(c *gin.Context) {
			stats, err := repo.ComputeStatistics(c.Request.Context())
			if err != nil {
				log.Error("Failed to compute statistics", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
				return
			}

			c.JSON(http.StatusOK, stats)
		})

		// Register a new user
		api.POST("/users", func(c *gin.Context) {
			var req struct {
				Name      string `json:"name" binding:"required"`
				Email     string `json:"email" binding:"required,email"`
				Slug      string `json:"slug" binding:"required"`
				Password  string `json:"password" binding:"required"`
				CreatedAt string `json:"createdAt" binding:"required"`
			}

			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := identity.Register(c.Request.Context(), auth.RegisterInput{
				Name:      req.Name,
				Email:     req.Email,
				Slug:      req.Slug,
				Password:  req.Password,
				CreatedAt: req.CreatedAt,
			})
			if err != nil {
				var taken graph.ErrEmailTaken
				if errors.As(err, &taken) {
					c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
					return
				}
				log.Error("Failed to register user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
				return
			}

			c.JSON(http.StatusOK, user)
		})

		// Verify credentials and issue a session token
		api.POST("/login", func(c *gin.Context) {
			var req struct {
				Email    string `json:"email" binding:"required"`
				Password string `json:"password" binding:"required"`
			}

			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			user, err := identity.Login(c.Request.Context(), req.Email, req.Password)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email address or password."})
					return
				}
				log.Error("Failed to log user in", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
				return
			}

			c.JSON(http.StatusOK, user)
		})
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
