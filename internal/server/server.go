package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"taskdesk/internal/config"
	"taskdesk/internal/handler"
	"taskdesk/internal/middleware"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine   *gin.Engine
	Store    *repository.Store
	Service  *service.Service
	Registry *prometheus.Registry
	Config   *config.Config
	Logger   *zap.Logger
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store := repository.NewStore()
	if cfg.SeedDemoData {
		if err := repository.Seed(context.Background(), store); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
		employees, tasks := store.Counts()
		logger.Info("seeded demo data", zap.Int("employees", employees), zap.Int("tasks", tasks))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewFromStore(store,
		service.WithDelay(service.FixedDelay(cfg.SimulatedLatency)),
		service.WithLogger(logger.Named("service")),
		service.WithMetrics(service.NewMetrics(registry)),
	)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger.Named("http")), gin.Recovery())

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.JWTExpiry, service.FixedDelay(cfg.LoginLatency))
	employeeHandler := handler.NewEmployeeHandler(svc)
	taskHandler := handler.NewTaskHandler(svc)

	// Public routes
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Employee routes
		authorized.GET("/employees", employeeHandler.GetAll)
		authorized.POST("/employees", employeeHandler.Create)
		authorized.GET("/employees/:id", employeeHandler.GetByID)
		authorized.PUT("/employees/:id", employeeHandler.Update)
		authorized.DELETE("/employees/:id", employeeHandler.Delete)

		// Task routes
		authorized.GET("/tasks", taskHandler.GetAll)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return &Server{
		Engine:   r,
		Store:    store,
		Service:  svc,
		Registry: registry,
		Config:   cfg,
		Logger:   logger,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens on the configured port until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	<-errCh

	s.Logger.Info("server exited properly")
	return nil
}

