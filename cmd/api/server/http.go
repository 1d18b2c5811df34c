package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "github.com/palhamel/mongo-auth-code/internal/adapter/gin/handler"
	ginrouter "github.com/palhamel/mongo-auth-code/internal/adapter/gin/router"
	"github.com/palhamel/mongo-auth-code/internal/config"
	"github.com/palhamel/mongo-auth-code/internal/usecase/auth"
)

// SetupHTTPServer creates and configures the HTTP server serving the
// authentication API.
func SetupHTTPServer(
	cfg *config.Config,
	handler *ginhandler.AuthHandler,
	authUC auth.Usecase,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, authUC, cfg.Logger.ServiceName, l)

	addr := ":" + cfg.App.Port
	l.Info("HTTP server configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
