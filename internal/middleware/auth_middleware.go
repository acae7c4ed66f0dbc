package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/response"
)

const (
	contextIdentity = "identity"
	contextUserID   = "userID"
	contextUser     = "user"
)

// ErrMissingToken is returned when a request carries no usable bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// Authenticator turns a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// AuthMiddleware verifies bearer tokens and resolves the calling user.
type AuthMiddleware struct {
	authenticator Authenticator
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
// It panics if the authenticator is nil, since protected routes cannot work without it.
func NewAuthMiddleware(authenticator Authenticator, logger *zap.Logger) *AuthMiddleware {
	if authenticator == nil {
		panic("AuthMiddleware requires a non-nil Authenticator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{authenticator: authenticator, logger: logger}
}

// VerifyToken reads the Authorization header, verifies the token and stores
// the resulting identity in the gin context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil && !m.headerOptional() {
			response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized, nil)
			return
		}

		identity, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil || identity == nil || identity.Subject == "" {
			m.logger.Debug("Token verification failed", zap.Error(err), zap.String("request_id", RequestID(c)))
			response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized, nil)
			return
		}

		c.Set(contextIdentity, identity)
		c.Set(contextUserID, identity.Subject)
		c.Next()
	}
}

// ResolveUser loads the user for the verified identity, creating it on first
// sight. It must run after VerifyToken.
func (m *AuthMiddleware) ResolveUser(users core.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(contextIdentity)
		identity, _ := value.(*models.Identity)
		if !ok || identity == nil {
			response.Fail(c, http.StatusUnauthorized, response.MsgUnauthorized, nil)
			return
		}

		user, _, err := users.GetOrCreate(c.Request.Context(), *identity)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(contextUserID, user.ID)
		c.Set(contextUser, user)
		c.Next()
	}
}

// static mode needs no header.
func (m *AuthMiddleware) headerOptional() bool {
	_, ok := m.authenticator.(*StaticAuthenticator)
	return ok
}

func bearerToken(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}

// UserID returns the authenticated user's id.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(contextUserID)
	return id, id != ""
}

// CurrentUser returns the user resolved by ResolveUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(contextUser)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
