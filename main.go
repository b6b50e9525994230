package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hostpulse/internal/config"
	"hostpulse/internal/controllers"
	"hostpulse/internal/middleware"
	"hostpulse/internal/probe"
	"hostpulse/internal/routes"
	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	metrics := services.NewMetricsService(probe.NewGopsutilProbe(), cfg.CPUSample())

	var auth *services.AuthService
	if cfg.AuthEnabled() {
		auth = services.NewAuthService(cfg.AuthSecret, cfg.TokenLifetime())
	}

	hub := services.NewStreamHub(metrics, cfg.Stream())
	hub.Start()
	defer hub.Stop()

	r := gin.Default()
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))

	var guards []gin.HandlerFunc
	if auth != nil {
		guards = append(guards, middleware.RequireToken(auth))
		routes.RegisterAuthRoutes(r, controllers.NewAuthController(auth))
	}

	routes.RegisterSystemRoutes(r, controllers.NewSystemController(metrics))
	routes.RegisterMetricRoutes(r, controllers.NewMetricsController(metrics), guards...)
	routes.RegisterProcessRoutes(r, controllers.NewProcessController(metrics), guards...)
	routes.RegisterStreamRoutes(r, controllers.NewStreamController(hub, auth))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("hostpulse listening on %s (auth: %v)", cfg.Addr(), cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
