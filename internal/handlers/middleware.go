package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	userIDKey       = "userId"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	// browsers cannot set headers on a websocket handshake
	if header == "" && websocket.IsWebSocketUpgrade(c.Request) && c.Query("token") != "" {
		header = "Bearer " + c.Query("token")
	}
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "request_id", c.GetString(requestIDKey), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(userIDKey, userId)
	c.Next()
}

// currentUser returns the id stored by userIdMiddleware.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// requestLogger tags the request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDKey, rid)
	c.Header(requestIDHeader, rid)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
