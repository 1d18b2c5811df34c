package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/palhamel/mongo-auth-code/internal/adapter/gin/handler"
	"github.com/palhamel/mongo-auth-code/internal/adapter/gin/middleware"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	authUC auth.Usecase,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	// Public routes
	router.GET("/", authHandler.Root)
	router.POST("/users", authHandler.Register)
	router.POST("/sessions", authHandler.Login)

	// Protected routes: the guard runs before the handler and
	// short-circuits unauthenticated requests
	router.GET("/secrets", middleware.AuthenticateUser(authUC, log), authHandler.Secrets)

	return router
}
