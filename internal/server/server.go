package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/community-feed/backend/internal/database"
	"github.com/emilythestrangee/community-feed/backend/internal/handlers"
	"github.com/emilythestrangee/community-feed/backend/internal/middleware"
)

type Server struct {
	db       database.Service
	handler  *handlers.Handler
	resolver *middleware.ActorResolver
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Bootstrap the schema so the durable constraints exist before GORM runs.
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	dbService := database.New()
	gormDB := dbService.GetDB()

	newServer := &Server{
		db:       dbService,
		handler:  handlers.NewHandler(gormDB),
		resolver: middleware.NewActorResolver(gormDB),
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Read paths resolve the viewer when possible, for liked flags
		reads := api.Group("")
		reads.Use(s.resolver.AuthOptional())
		{
			reads.GET("/posts", s.handler.Post.GetPosts)
			reads.GET("/posts/:id/comments", s.handler.Comment.GetComments)
			reads.GET("/leaderboard", s.handler.Leaderboard.GetLeaderboard)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(s.resolver.AuthRequired())
		{
			protected.GET("/auth/me", s.handler.Auth.GetMe)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.POST("/posts/:id/like", s.handler.Post.LikePost)
			protected.POST("/posts/:id/unlike", s.handler.Post.UnlikePost)

			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:commentId/like", s.handler.Comment.LikeComment)
			protected.POST("/comments/:commentId/unlike", s.handler.Comment.UnlikeComment)
		}
	}

	return r
}
