package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetgrid/ownerconsole/internal/authn"
)

const (
	sessionCookieName = "__session"
	contextCallerKey  = "caller"
	headerRequestID   = "X-Request-ID"
)

// RequestLogging tags every request with an id and emits one structured
// line per request.
func RequestLogging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		start := time.Now()
		c.Next()

		logger.Info("http.request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// AuthRequired resolves the session token from the Authorization header
// or the session cookie and stores the caller context on the request.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				token = cookie
			}
		}

		caller, err := s.verifier.Parse(token)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextCallerKey, caller)
		c.Next()
	}
}

// OwnerRequired rejects any authenticated caller without the platform
// owner role.
func (s *Server) OwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !caller.IsOwner() {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func callerFromContext(c *gin.Context) (authn.Context, bool) {
	value, ok := c.Get(contextCallerKey)
	if !ok {
		return authn.Context{}, false
	}
	caller, ok := value.(authn.Context)
	return caller, ok
}
