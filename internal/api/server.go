package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"railres/internal/auth"
	"railres/internal/cache"
	"railres/internal/config"
	"railres/internal/database"
	"railres/internal/handlers"
	"railres/internal/messaging"
	"railres/internal/metrics"
	"railres/internal/middleware"
	"railres/internal/repository"
	"railres/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API
type Server struct {
	router      *gin.Engine
	config      *config.Config
	db          *database.DB
	nats        *messaging.NATSClient
	valkey      *cache.ValkeyClient
	registry    *prometheus.Registry
	services    *service.Services
	repos       *repository.Repositories
	issuer      *auth.TokenIssuer
	revocations cache.RevocationStore
}

// NewServer создает новый экземпляр сервера. Внешние зависимости
// (PostgreSQL, NATS, Valkey) подключаются только если включены в конфиге.
func NewServer(cfg *config.Config, opts ...service.BookingOption) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		issuer:   auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(s.registry)

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = db
		if err := db.RunMigrations(); err != nil {
			s.Cleanup()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var publisher messaging.Publisher = messaging.NopPublisher{}
	if cfg.NATS.Enabled {
		natsClient, err := messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			s.Cleanup()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		s.nats = natsClient
		publisher = natsClient
	}

	s.revocations = cache.NewMemoryRevocationStore()
	if cfg.Valkey.Enabled {
		valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
		if err != nil {
			s.Cleanup()
			return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
		}
		s.valkey = valkeyClient
		s.revocations = valkeyClient
	}

	s.repos = repository.NewRepositories(s.db)
	opts = append([]service.BookingOption{service.WithPNRMaxAttempts(cfg.Booking.PNRMaxAttempts)}, opts...)
	s.services = service.NewServices(s.repos, publisher, auth.NewBcryptVerifier(cfg.Auth.BcryptCost), m, opts...)

	ctx := context.Background()
	if cfg.Auth.AdminPassword != "" {
		if err := s.services.Users.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.AdminEmail); err != nil {
			s.Cleanup()
			return nil, fmt.Errorf("failed to create admin account: %w", err)
		}
	}
	if cfg.Booking.SeedDemoData {
		if err := s.services.SeedDemoData(ctx); err != nil {
			s.Cleanup()
			return nil, err
		}
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics(m))
	s.router = router

	s.setupRoutes()

	return s, nil
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.issuer, s.revocations)

	api := s.router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login", h.Login)
		}

		// Остальные роуты требуют Bearer-токен
		authed := api.Group("")
		authed.Use(middleware.Auth(s.issuer, s.revocations))
		{
			authed.POST("/users/logout", h.Logout)

			trains := authed.Group("/trains")
			{
				trains.GET("", h.SearchTrains)
				trains.GET("/:number", h.GetTrain)
			}

			bookings := authed.Group("/bookings")
			{
				bookings.POST("", h.CreateBooking)
				bookings.GET("", h.ListBookings)
				bookings.PATCH("/cancel", h.CancelBooking)
				bookings.GET("/history", h.BookingHistory)
			}

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/trains", h.AddTrain)
				admin.DELETE("/trains/:number", h.RemoveTrain)
				admin.GET("/bookings", h.ListAllBookings)
			}
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	response := gin.H{
		"status":  "ok",
		"service": "railres-api",
		"version": "1.0.0",
	}

	if s.db != nil {
		dbHealth := s.db.HealthCheck(c.Request.Context())
		response["database"] = dbHealth
		if dbHealth.Status != "healthy" {
			response["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
