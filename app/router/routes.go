// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/amirphl/social-admin/app/dto"
	"github.com/amirphl/social-admin/app/handlers"
	"github.com/amirphl/social-admin/app/middleware"
	"github.com/amirphl/social-admin/docs"
	"github.com/amirphl/social-admin/models"
	"github.com/amirphl/social-admin/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/swaggo/swag"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// HealthCheck probes one dependency for the health endpoint
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Config carries the HTTP-level settings of the router
type Config struct {
	AppName         string
	BodyLimit       int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AllowedOrigins  []string
	GlobalRateLimit int
	AuthRateLimit   int
	RateLimitWindow time.Duration
	EnableDocs      bool
	EnableMetrics   bool
	LimiterStorage  fiber.Storage
	Version         string
}

// Handlers groups the endpoint handlers served by the router
type Handlers struct {
	Auth            handlers.AuthHandlerInterface
	AdminAuth       handlers.AdminAuthHandlerInterface
	AdminAccount    handlers.AdminAccountHandlerInterface
	BusinessProfile handlers.BusinessProfileHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app            *fiber.App
	cfg            Config
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	healthChecks   []HealthCheck
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(cfg Config, h Handlers, authMiddleware *middleware.AuthMiddleware, healthChecks ...HealthCheck) Router {
	if cfg.AppName == "" {
		cfg.AppName = "Social Admin API"
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 4 * 1024 * 1024
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: "social-admin",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:            app,
		cfg:            cfg,
		handlers:       h,
		authMiddleware: authMiddleware,
		healthChecks:   healthChecks,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	r.app.Get("/api/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})
	if r.cfg.EnableMetrics {
		r.app.Get("/metrics", middleware.MetricsHandler())
	}
	if r.cfg.EnableDocs {
		r.app.Get("/swagger.json", r.serveSwaggerJSON)
		r.app.Get("/swagger", r.serveSwaggerUI)
		log.Println("API documentation enabled")
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	if r.cfg.GlobalRateLimit > 0 {
		api.Use(r.rateLimiter(r.cfg.GlobalRateLimit, func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		}))
	}

	auth := api.Group("/auth")
	if r.cfg.AuthRateLimit > 0 {
		auth.Use(r.rateLimiter(r.cfg.AuthRateLimit, nil))
	}

	auth.Post("/personal/signup", r.handlers.Auth.SignupPersonal)
	auth.Post("/business/signup", r.handlers.Auth.SignupBusiness)
	auth.Post("/personal/login", r.handlers.Auth.LoginPersonal)
	auth.Post("/business/login", r.handlers.Auth.LoginBusiness)
	auth.Post("/forgot-password", r.handlers.Auth.ForgotPassword)
	auth.Post("/confirm-reset", r.handlers.Auth.ConfirmReset)
	auth.Post("/reset-password", r.handlers.Auth.ResetPassword)
	auth.Post("/resend-activation", r.handlers.Auth.ResendActivation)
	auth.Post("/logout", r.authMiddleware.Authenticate(), r.handlers.Auth.Logout)

	businessOnly := middleware.RequireAccountType(models.AccountTypeBusiness.String())
	auth.Get("/business/profile", r.authMiddleware.Authenticate(), businessOnly, r.handlers.BusinessProfile.GetProfile)
	auth.Put("/business/update", r.authMiddleware.Authenticate(), businessOnly, r.handlers.BusinessProfile.UpdateProfile)

	admin := api.Group("/admin")
	adminAuth := admin.Group("/auth")
	if r.cfg.AuthRateLimit > 0 {
		adminAuth.Use(r.rateLimiter(r.cfg.AuthRateLimit, nil))
	}
	adminAuth.Get("/captcha/init", r.handlers.AdminAuth.InitCaptcha)
	adminAuth.Post("/login", r.handlers.AdminAuth.Login)

	accounts := admin.Group("/accounts", r.authMiddleware.AdminAuthenticate())
	accounts.Get("/pending", r.handlers.AdminAccount.ListPending)
	accounts.Get("/pending/export", r.handlers.AdminAccount.ExportPending)
	accounts.Post("/approve", r.handlers.AdminAccount.Approve)
	accounts.Post("/reject", r.handlers.AdminAccount.Reject)

	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

func (r *FiberRouter) rateLimiter(max int, next func(c fiber.Ctx) bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: r.cfg.RateLimitWindow,
		Storage:    r.cfg.LimiterStorage,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
				Success: false,
				Message: "Too many requests. Please try again later.",
				Error: dto.ErrorDetail{
					Code: "RATE_LIMIT_EXCEEDED",
				},
			})
		},
		Next: next,
	})
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		HSTSMaxAge:                31536000,
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https:; frame-ancestors 'none';",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		XDNSPrefetchControl:       "off",
		XDownloadOptions:          "noopen",
		XPermittedCrossDomain:     "none",
	}))

	if len(r.cfg.AllowedOrigins) > 0 {
		r.app.Use(cors.New(cors.Config{
			AllowOrigins: r.cfg.AllowedOrigins,
			AllowMethods: []string{
				"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS",
			},
			AllowHeaders: []string{
				"Origin",
				"Content-Type",
				"Accept",
				"Authorization",
				"X-Requested-With",
				"X-Request-ID",
			},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: !containsWildcard(r.cfg.AllowedOrigins),
			MaxAge:           utils.CORSMaxAge,
		}))
	}

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			return strings.HasSuffix(c.Path(), "/export")
		},
	}))

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${respHeader:X-Request-ID}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent}}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health" || c.Path() == "/metrics"
		},
	}))

	if r.cfg.EnableMetrics {
		r.app.Use(middleware.Metrics())
	}

	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e any) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNowRFC3339(),
				requestid.FromContext(c),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// healthCheck reports each dependency; any failure turns the response into a 503
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status := fiber.Map{}
	healthy := true
	for _, hc := range r.healthChecks {
		if err := hc.Check(ctx); err != nil {
			status[hc.Name] = "unhealthy: " + err.Error()
			healthy = false
			continue
		}
		status[hc.Name] = "healthy"
	}

	code, message, overall := fiber.StatusOK, "Service is healthy", "ok"
	if !healthy {
		code, message, overall = fiber.StatusServiceUnavailable, "Service is degraded", "degraded"
	}

	return c.Status(code).JSON(dto.APIResponse{
		Success: healthy,
		Message: message,
		Data: fiber.Map{
			"status":       overall,
			"timestamp":    utils.UTCNow().Unix(),
			"version":      r.cfg.Version,
			"service":      "social-admin-api",
			"dependencies": status,
		},
	})
}

func (r *FiberRouter) serveSwaggerUI(c fiber.Ctx) error {
	htmlContent := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Social Admin API - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({ url: '/swagger.json', dom_id: '#swagger-ui', deepLinking: true });
        };
    </script>
</body>
</html>`

	c.Set("Content-Type", "text/html")
	return c.SendString(htmlContent)
}

// serveSwaggerJSON renders the registered swag document
func (r *FiberRouter) serveSwaggerJSON(c fiber.Ctx) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Printf("Failed to read swagger doc: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.APIResponse{
			Success: false,
			Message: "Failed to load Swagger documentation",
			Error: dto.ErrorDetail{
				Code: "SWAGGER_LOAD_ERROR",
			},
		})
	}

	c.Set("Content-Type", "application/json")
	return c.SendString(doc)
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

// errorHandler answers errors that escaped the handlers without leaking their text
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "An internal server error occurred"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}

	log.Printf("Error %d: %v", code, err)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestid.FromContext(c),
			},
		},
	})
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
