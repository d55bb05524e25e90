package middleware

import (
	"errors"
	"time"

	"staffdesk/internal/config"
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Setup configures all middlewares for the application.
// storage backs the general limiter; nil keeps counters in memory.
func Setup(app *fiber.App, cfg *config.Config, storage fiber.Storage, metrics *Metrics) {
	// Recover middleware - catches panics
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDev(),
	}))

	// Request ID, honoured when the client sends one
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	if metrics != nil {
		app.Use(metrics.Middleware())
	}

	// Gzip Compression middleware
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Security Headers middleware (Helmet)
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// Rate Limiter middleware - General API
	if cfg.RateLimit.APIMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.APIMax,
			Expiration: 1 * time.Minute,
			Storage:    storage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return "api:" + c.IP()
			},
			LimitReached: response.TooManyRequests,
		}))
	}

	// Logger middleware
	if cfg.IsDev() {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		}))
	} else {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid} | ${error}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	// CORS middleware
	if cfg.IsDev() {
		// Development: Allow all origins
		app.Use(cors.New(cors.Config{
			AllowOrigins:     "*",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
			AllowCredentials: false, // Cannot be true with AllowOrigins: "*"
		}))
	} else {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.GetAllowedOrigins(),
			AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:  "Origin,Content-Type,Accept,Authorization,X-Request-ID",
			ExposeHeaders: "Retry-After,X-Request-ID",
		}))
	}
}

// LoginRateLimiter is the fixed-window throttle in front of the login route:
// Max attempts per window per client IP, counted in storage (memory when nil).
func LoginRateLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               cfg.LoginMax,
		Expiration:        cfg.LoginWindow,
		Storage:           storage,
		LimiterMiddleware: limiter.FixedWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: response.TooManyRequests,
	})
}

// CustomErrorHandler handles errors globally
func CustomErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Message(c, fe.Code, fe.Message)
		}

		log.Error(c.Context(), "unhandled error",
			"error", err,
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
		)
		return response.InternalServerError(c)
	}
}
