package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskgate/riskgate/internal/cache"
	"github.com/riskgate/riskgate/internal/handlers"
	"github.com/riskgate/riskgate/internal/helpers"
	"github.com/riskgate/riskgate/internal/middlewares"
	"github.com/riskgate/riskgate/internal/models"
	"github.com/riskgate/riskgate/internal/notifier"
	"github.com/riskgate/riskgate/internal/risk"
	"github.com/riskgate/riskgate/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartHTTPServer wires the services onto the router and blocks until
// shutdown.
func StartHTTPServer(
	config models.Configuration,
	db *gorm.DB,
	cacheClient cache.ICache,
	predictor risk.IPredictor,
	notify notifier.INotifier,
) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authService := services.AuthService{
		DB:         db,
		Cache:      cacheClient,
		Risk:       predictor,
		Notifier:   notify,
		AppConfig:  config.App,
		RiskConfig: config.Risk,
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		helpers.RespondWithJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Mount("/auth", authService.Routes())

	r.Route("/users", func(r chi.Router) {
		r.Use(middlewares.Authenticate(config.App.JWTSecret))
		r.Get("/me", handlers.GetOneHandler(authService.Me))
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.App.Port),
		Handler:           otelhttp.NewHandler(r, "riskgate"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.L().Info("HTTP server listening", zap.Int("port", config.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP server crashed", zap.Error(err))
		}
	}()

	<-shutdown
	zap.L().Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("Graceful shutdown failed", zap.Error(err))
	}
}
