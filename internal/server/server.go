package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/handlers"
	"github.com/commencementdepot/storefront-orders-service/internal/middleware"
)

// Server wraps the gin router and the underlying HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

// New creates a server with routes and middleware configured.
func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Route paths match what the storefront frontend calls.
	s.router.POST("/confirm-order", s.handlers.ConfirmOrder)
	s.router.POST("/create-payment-intent", s.handlers.CreatePaymentIntent)
	s.router.POST("/webhook", s.handlers.PaymentWebhook)
	s.router.GET("/test-email", s.handlers.TestEmail)
	s.router.GET("/orders/:id/receipt", s.handlers.GetReceipt)
}

// Start begins serving HTTP traffic. It blocks until the server stops.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
