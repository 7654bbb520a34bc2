package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"calendar-be/internal/controllers"
	"calendar-be/internal/metrics"
	"calendar-be/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with every route of the API
func NewRouter(
	logger zerolog.Logger,
	tokens middleware.TokenValidator,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
) *gin.Engine {
	router := gin.New()
	// Recovery runs inside the logger and metrics so a panic still
	// produces an access log line and a 500 sample.
	router.Use(middleware.RequestLogger(logger), middleware.Metrics(), gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.GET("/events", eventController.ListEvents)
			protected.POST("/events", eventController.CreateEvent)
			protected.PUT("/events/:id", eventController.UpdateEvent)
			protected.DELETE("/events/:id", eventController.DeleteEvent)
			protected.GET("/events/:id/qrcode", eventController.GenerateQRCode)

			protected.GET("/calendar/export", eventController.ExportCalendar)
		}
	}

	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, logger zerolog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("address", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("received interruption signal, shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
