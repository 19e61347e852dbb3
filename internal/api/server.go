package api

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shadowgoose/grantpulse/internal/auth"
	"github.com/shadowgoose/grantpulse/internal/db"
	"github.com/shadowgoose/grantpulse/internal/discovery"
	"github.com/shadowgoose/grantpulse/internal/eligibility"
	"github.com/shadowgoose/grantpulse/internal/metrics"
	"github.com/shadowgoose/grantpulse/internal/models"
	"github.com/shadowgoose/grantpulse/internal/notify"
)

type Server struct {
	Echo          *echo.Echo
	DB            *pgxpool.Pool
	Grants        *db.Store
	AuthService   *auth.Service
	Notifications *notify.Store
	Scheduler     *notify.Scheduler
	Scraper       *discovery.Scraper
	Profile       models.EligibilityProfile
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(pool *pgxpool.Pool, profile models.EligibilityProfile, notifications *notify.Store, scheduler *notify.Scheduler, scraper *discovery.Scraper) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Secret"},
	}))

	s := &Server{
		Echo:          e,
		DB:            pool,
		Grants:        db.NewStore(pool),
		AuthService:   auth.NewService(pool),
		Notifications: notifications,
		Scheduler:     scheduler,
		Scraper:       scraper,
		Profile:       profile,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.Echo.Group("/api/v1")

	// Auth
	api.POST("/auth/signup", s.handleSignup)
	api.POST("/auth/login", s.handleLogin)

	// Grants
	api.GET("/grants", s.handleListGrants)
	api.GET("/grants/:id", s.handleGetGrant)
	api.POST("/grants/:id/assess", s.handleAssessGrant)

	// Manual entry requires a logged-in user
	protected := api.Group("/grants")
	protected.Use(auth.Middleware)
	protected.POST("", s.handleCreateGrant)

	// Notifications
	api.GET("/notifications", s.handleListNotifications)
	api.POST("/notifications/:id/read", s.handleMarkRead)
	api.POST("/notifications/read-all", s.handleMarkAllRead)

	// Admin routes (sweeps and discovery)
	admin := api.Group("/admin")
	admin.Use(s.adminMiddleware)
	admin.POST("/sweeps/deadlines", s.handleDeadlineSweep)
	admin.POST("/sweeps/new-grants", s.handleNewGrantSweep)
	admin.POST("/sweeps/daily-summary", s.handleDailySummary)
	admin.POST("/notifications/test", s.handleTestNotification)
	admin.POST("/discovery/run", s.handleDiscoveryRun)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleSignup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	}

	resp, err := s.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListGrants(c echo.Context) error {
	params := db.ListParams{
		Status: c.QueryParam("status"),
		Source: c.QueryParam("source"),
		Search: c.QueryParam("q"),
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		params.Limit = l
	}
	if o, err := strconv.Atoi(c.QueryParam("offset")); err == nil && o >= 0 {
		params.Offset = o
	}

	result, err := s.Grants.List(c.Request().Context(), params)
	if err != nil {
		c.Logger().Errorf("Failed to list grants: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetGrant(c echo.Context) error {
	grant, err := s.Grants.GetGrant(c.Request().Context(), c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, grant)
}

func (s *Server) handleCreateGrant(c echo.Context) error {
	var grant models.GrantRecord
	if err := c.Bind(&grant); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if strings.TrimSpace(grant.Name) == "" || strings.TrimSpace(grant.Funder) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and funder are required"})
	}

	// Assess on entry so the new grant carries a category immediately.
	assessment := eligibility.Assess(grant, s.Profile)
	grant.Assessment = &assessment
	metrics.AssessmentsTotal.WithLabelValues(assessment.Category).Inc()

	id, inserted, err := s.Grants.InsertGrant(c.Request().Context(), grant)
	if err != nil {
		c.Logger().Errorf("Failed to insert grant: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	if !inserted {
		return c.JSON(http.StatusConflict, map[string]string{"error": "grant already exists"})
	}

	return c.JSON(http.StatusCreated, map[string]any{"id": id, "assessment": assessment})
}

func (s *Server) handleAssessGrant(c echo.Context) error {
	ctx := c.Request().Context()
	grant, err := s.Grants.GetGrant(ctx, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	assessment := eligibility.Assess(*grant, s.Profile)
	metrics.AssessmentsTotal.WithLabelValues(assessment.Category).Inc()

	if err := s.Grants.SaveAssessment(ctx, grant.ID, assessment); err != nil {
		c.Logger().Errorf("Failed to save assessment for %s: %v", grant.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, assessment)
}

func (s *Server) handleListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"notifications": s.Notifications.List(),
	})
}

func (s *Server) handleMarkRead(c echo.Context) error {
	if !s.Notifications.MarkRead(c.Param("id")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleMarkAllRead(c echo.Context) error {
	count := s.Notifications.MarkAllRead()
	return c.JSON(http.StatusOK, map[string]any{"marked": count})
}

func (s *Server) handleDeadlineSweep(c echo.Context) error {
	produced := s.Scheduler.RunDeadlineSweep(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"message":       "Deadline sweep complete",
		"notifications": len(produced),
	})
}

func (s *Server) handleNewGrantSweep(c echo.Context) error {
	produced := s.Scheduler.RunNewGrantSweep(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"message":       "New grant sweep complete",
		"notifications": len(produced),
	})
}

func (s *Server) handleDailySummary(c echo.Context) error {
	summary := s.Scheduler.RunDailySummary(c.Request().Context())
	if summary == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "summary failed"})
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleTestNotification(c echo.Context) error {
	stored := s.Scheduler.EmitTestNotification(c.Request().Context())
	return c.JSON(http.StatusOK, stored)
}

func (s *Server) handleDiscoveryRun(c echo.Context) error {
	if s.Scraper == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "discovery is not configured"})
	}
	stats := s.Scraper.Run(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Discovery run complete",
		"stats":   stats,
	})
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
