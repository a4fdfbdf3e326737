package server

import (
	"net/http"
	"time"

	"coldstart/internal/config"
	"coldstart/internal/handler"
	"coldstart/internal/middleware"
	"coldstart/internal/notifier"
	"coldstart/internal/repository"
	"coldstart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
	bot    *notifier.Bot
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger, bot *notifier.Bot) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	accessLog := logrus.New()
	accessLog.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	router.Use(middleware.RequestLogger(accessLog))

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
		bot:    bot,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Repositories
	authRepo := repository.NewAuthRepository(s.db, s.logger)
	venueRepo := repository.NewVenueRepository(s.db, s.logger)
	ratingRepo := repository.NewRatingRepository(s.db, s.logger)
	tipRepo := repository.NewTipRepository(s.db, s.logger)

	// Services
	authService := service.NewAuthService(authRepo, s.cfg.Auth.JWTSecret,
		time.Duration(s.cfg.Auth.TokenTTLHrs)*time.Hour, s.logger)
	summaryService := service.NewSummaryService(venueRepo, ratingRepo, tipRepo, s.cfg, s.logger)
	exportService := service.NewExportService(summaryService, s.logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, s.logger)
	venueHandler := handler.NewVenueHandler(venueRepo, s.cfg, s.logger)
	ratingHandler := handler.NewRatingHandler(ratingRepo, venueRepo, s.cfg, s.logger)
	tipHandler := handler.NewTipHandler(tipRepo, venueRepo, s.bot, s.logger)
	summaryHandler := handler.NewSummaryHandler(summaryService, exportService, s.logger)
	dashboardHandler := handler.NewDashboardHandler(venueRepo, ratingRepo, tipRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Public read routes
	public := s.router.Group("/api")
	{
		public.GET("/venues", venueHandler.ListVenues)
		public.GET("/venues/:id", venueHandler.GetVenueByID)
		public.GET("/venues/:id/summary", summaryHandler.GetSummary)
		public.GET("/venues/:id/summary/text", summaryHandler.GetSummaryText)
		public.GET("/venues/:id/briefing", summaryHandler.GetBriefing)
		public.GET("/venues/:id/comparison", summaryHandler.GetComparison)
		public.GET("/dashboard", dashboardHandler.GetDashboard)
	}

	// Authenticated routes
	secret := []byte(s.cfg.Auth.JWTSecret)
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(secret, s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)
		authRequired.POST("/venues", venueHandler.CreateVenue)
		authRequired.POST("/venues/:id/ratings", ratingHandler.SubmitRating)
		authRequired.POST("/venues/:id/tips", tipHandler.SubmitTip)
		authRequired.POST("/tips/:id/flag", tipHandler.FlagTip)
		authRequired.GET("/venues/:id/export", summaryHandler.ExportSummary)

		operatorOnly := authRequired.Group("")
		operatorOnly.Use(middleware.RequireRole("operator"))
		operatorOnly.POST("/tips/:id/response", tipHandler.RespondToTip)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("port", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
