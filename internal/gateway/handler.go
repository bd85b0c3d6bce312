package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shareit/backend/internal/infrastructure/observability"
)

const (
	// UserIDHeader carries the id of the acting user
	UserIDHeader = "X-Sharer-User-Id"
	// RequestIDHeader carries the request id to the server
	RequestIDHeader = "X-Request-ID"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}

// Handler validates request shape and relays requests to the server
type Handler struct {
	server Forwarder
}

// NewHandler creates a new gateway handler
func NewHandler(server Forwarder) *Handler {
	return &Handler{server: server}
}

// check inspects a request before it is forwarded; false means a response was written
type check func(c *gin.Context) bool

// relay builds a gin handler that runs the checks and forwards the request unchanged
func (h *Handler) relay(checks ...check) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			raw, err := c.GetRawData()
			if err != nil {
				badRequest(c, "failed to read request body")
				return
			}
			body = raw
		}
		c.Set(gin.BodyBytesKey, body)

		for _, ch := range checks {
			if !ch(c) {
				return
			}
		}

		resp, err := h.server.Forward(c.Request.Context(), Request{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RawQuery:  c.Request.URL.RawQuery,
			UserID:    c.GetHeader(UserIDHeader),
			RequestID: c.GetString(requestIDKey),
			Body:      body,
		})
		if err != nil {
			observability.LoggerFromContext(c.Request.Context()).Error().Err(err).
				Str("path", c.Request.URL.Path).Msg("Failed to forward request")
			c.JSON(http.StatusBadGateway, errorBody{Error: "Server unavailable."})
			return
		}

		if len(resp.Body) == 0 {
			c.Status(resp.StatusCode)
			return
		}
		c.Data(resp.StatusCode, resp.ContentType, resp.Body)
	}
}

func badRequest(c *gin.Context, description string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "Validation failed.", Description: description})
}

// requireUser rejects a missing or non-numeric X-Sharer-User-Id
func requireUser(c *gin.Context) bool {
	raw := c.GetHeader(UserIDHeader)
	if raw == "" {
		badRequest(c, UserIDHeader+" header is required")
		return false
	}
	return numericUser(c)
}

// optionalUser accepts a missing header but not a malformed one
func optionalUser(c *gin.Context) bool {
	if c.GetHeader(UserIDHeader) == "" {
		return true
	}
	return numericUser(c)
}

func numericUser(c *gin.Context) bool {
	raw := c.GetHeader(UserIDHeader)
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		badRequest(c, UserIDHeader+" header must be a number")
		return false
	}
	return true
}

// numericPath rejects a non-numeric path id
func numericPath(name string) check {
	return func(c *gin.Context) bool {
		if _, err := strconv.ParseInt(c.Param(name), 10, 64); err != nil {
			badRequest(c, name+" must be a number")
			return false
		}
		return true
	}
}

// paging enforces from >= 0 and size > 0 when present
func paging(c *gin.Context) bool {
	if raw, ok := c.GetQuery("from"); ok {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			badRequest(c, "from must be a non-negative number")
			return false
		}
	}
	if raw, ok := c.GetQuery("size"); ok {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			badRequest(c, "size must be a positive number")
			return false
		}
	}
	return true
}

// knownState rejects an unknown booking state token
func knownState(c *gin.Context) bool {
	state := c.DefaultQuery("state", "ALL")
	if !bookingStates[state] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown state: " + state})
		return false
	}
	return true
}

// approvedFlag requires approved=true|false
func approvedFlag(c *gin.Context) bool {
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		badRequest(c, "approved must be true or false")
		return false
	}
	return true
}

// jsonBody decodes the buffered body into a fresh T and validates its binding tags
func jsonBody[T any]() check {
	return func(c *gin.Context) bool {
		var in T
		raw, _ := c.Get(gin.BodyBytesKey)
		body, _ := raw.([]byte)
		if err := binding.JSON.BindBody(body, &in); err != nil {
			badRequest(c, err.Error())
			return false
		}
		return true
	}
}
