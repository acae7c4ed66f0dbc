package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func validClaims(subject string) Claims {
	return Claims{
		Email: subject + "@example.com",
		Name:  "Tester",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTAuthenticator(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, "creatorflow")

	good, err := a.SignToken(validClaims("user-1"))
	require.NoError(t, err)

	expiredClaims := validClaims("user-1")
	expiredClaims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	expired, err := a.SignToken(expiredClaims)
	require.NoError(t, err)

	otherSecret, err := NewJWTAuthenticator("ffffffffffffffffffffffffffffffff", "creatorflow").SignToken(validClaims("user-1"))
	require.NoError(t, err)

	wrongIssuer, err := NewJWTAuthenticator(testSecret, "someone-else").SignToken(validClaims("user-1"))
	require.NoError(t, err)

	noSubject, err := a.SignToken(validClaims(""))
	require.NoError(t, err)

	noExpiryClaims := validClaims("user-1")
	noExpiryClaims.ExpiresAt = nil
	noExpiry, err := a.SignToken(noExpiryClaims)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims("user-1")).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		ok    bool
	}{
		{"valid", good, true},
		{"expired", expired, false},
		{"wrong secret", otherSecret, false},
		{"wrong issuer", wrongIssuer, false},
		{"no subject", noSubject, false},
		{"no expiry", noExpiry, false},
		{"alg none", unsigned, false},
		{"garbage", "not-a-token", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := a.Authenticate(context.Background(), tt.token)
			if !tt.ok {
				assert.Error(t, err)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-1", identity.Subject)
			assert.Equal(t, "user-1@example.com", identity.Email)
			assert.Equal(t, "Tester", identity.Name)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Basic abc", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		token, err := bearerToken(tt.header)
		if tt.ok {
			assert.NoError(t, err, tt.header)
			assert.Equal(t, tt.token, token)
		} else {
			assert.ErrorIs(t, err, ErrMissingToken, tt.header)
		}
	}
}

func newAuthRouter(authenticator Authenticator) *gin.Engine {
	store := db.NewMemoryStore()
	users := core.NewUserService(store, core.NewAuditService(store.Audit()), zap.NewNop())
	mw := NewAuthMiddleware(authenticator, zap.NewNop())

	r := gin.New()
	r.GET("/me", mw.VerifyToken(), mw.ResolveUser(users), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "plan": user.Plan, "email": user.Email})
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_JWT(t *testing.T) {
	a := NewJWTAuthenticator(testSecret, "")
	r := newAuthRouter(a)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeError(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Unauthorized", body.Error)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token creates user", func(t *testing.T) {
		token, err := a.SignToken(validClaims("65f1a2b3c4d5e6f708192a3b"))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "65f1a2b3c4d5e6f708192a3b", body["id"])
		assert.Equal(t, "free", body["plan"])
		assert.Equal(t, "65f1a2b3c4d5e6f708192a3b@example.com", body["email"])
	})
}

func TestAuthMiddleware_StaticNeedsNoHeader(t *testing.T) {
	r := newAuthRouter(NewStaticAuthenticator(models.Identity{
		Subject: "507f1f77bcf86cd799439011",
		Email:   "demo@creatorflow.app",
		Name:    "Demo Creator",
		Plan:    models.PlanPro,
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "507f1f77bcf86cd799439011", body["id"])
	assert.Equal(t, "pro", body["plan"])
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()), RecoveryMiddleware(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRequestLogger_RequestID(t *testing.T) {
	var meta core.RequestMeta
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		meta, _ = core.RequestMetaFromContext(c.Request.Context())
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("echoes incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		req.Header.Set("User-Agent", "tests/1.0")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-123", w.Body.String())
		assert.Equal(t, "tests/1.0", meta.UserAgent)
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/things/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/"+id, nil))
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.creatorflow.app"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.creatorflow.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://app.creatorflow.app", w.Header().Get("Access-Control-Allow-Origin"))
}
