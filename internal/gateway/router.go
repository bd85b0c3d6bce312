package gateway

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareit/backend/internal/infrastructure/observability"
)

const requestIDKey = "request_id"

// NewRouter builds the gateway's gin engine with the same surface as the server
func NewRouter(h *Handler, allowedOrigins []string) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(allowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	users := r.Group("/users")
	{
		users.POST("", h.relay(jsonBody[userCreateBody]()))
		users.GET("", h.relay())
		users.GET("/:id", h.relay(numericPath("id")))
		users.PATCH("/:id", h.relay(numericPath("id"), jsonBody[userUpdateBody]()))
		users.DELETE("/:id", h.relay(numericPath("id")))
	}

	items := r.Group("/items")
	{
		items.POST("", h.relay(requireUser, jsonBody[itemCreateBody]()))
		items.GET("", h.relay(requireUser, paging))
		items.GET("/search", h.relay(optionalUser, paging))
		items.GET("/:id", h.relay(requireUser, numericPath("id")))
		items.PATCH("/:id", h.relay(requireUser, numericPath("id"), jsonBody[itemUpdateBody]()))
		items.POST("/:id/comment", h.relay(requireUser, numericPath("id"), jsonBody[commentBody]()))
	}

	requests := r.Group("/requests")
	{
		requests.POST("", h.relay(requireUser, jsonBody[itemRequestBody]()))
		requests.GET("", h.relay(requireUser))
		requests.GET("/all", h.relay(requireUser, paging))
		requests.GET("/:id", h.relay(requireUser, numericPath("id")))
	}

	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.relay(requireUser, jsonBody[bookingBody]()))
		bookings.GET("", h.relay(requireUser, knownState, paging))
		bookings.GET("/owner", h.relay(requireUser, knownState, paging))
		bookings.GET("/:id", h.relay(requireUser, numericPath("id")))
		bookings.PATCH("/:id", h.relay(requireUser, numericPath("id"), approvedFlag))
	}

	return r, nil
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", UserIDHeader, RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}

// requestLogger tags each request with an id and logs it once served
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		observability.LoggerFromContext(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}
