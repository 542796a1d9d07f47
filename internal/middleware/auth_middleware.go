package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studyshare/internal/app/models/dto"
	"github.com/yigit/studyshare/internal/pkg/session"
)

// Context keys set by the session middleware
const (
	ContextUserID    = "userID"
	ContextSessionID = "sessionID"
)

// AuthMiddleware resolves the session cookie into the current user
type AuthMiddleware struct {
	sessions   *session.Manager
	cookieName string
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Manager, cookieName string, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger,
	}
}

// LoadSession attaches the user of a valid session cookie to the context.
// Requests without a usable session continue anonymously.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := m.sessions.Resolve(token)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Ignoring unusable session cookie")
			c.Next()
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextSessionID, sess.ID)
		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated session
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, if any
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
