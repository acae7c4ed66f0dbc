package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/middleware"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "creatorflow-test-secret-0123456789abcdef"
	aliceID    = "65f1a2b3c4d5e6f708192a3b"
	bobID      = "65f1a2b3c4d5e6f708192a3c"
	missingID  = "65f1a2b3c4d5e6f708192aff"
)

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   string                  `json:"error"`
	Errors  []validation.FieldError `json:"errors"`
}

type testServer struct {
	router *gin.Engine
	store  *db.MemoryStore
	alice  string
	bob    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := db.NewMemoryStore()
	audit := core.NewAuditService(store.Audit())
	users := core.NewUserService(store, audit, logger)
	brands := core.NewBrandService(store, audit, logger)
	deals := core.NewDealService(store, audit, logger)
	authenticator := middleware.NewJWTAuthenticator(testSecret, "creatorflow")

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), middleware.RecoveryMiddleware(logger), middleware.Metrics())
	SetupRoutes(router, logger, store, authenticator, users, brands, deals)

	return &testServer{
		router: router,
		store:  store,
		alice:  mintToken(t, authenticator, aliceID, "alice@example.com"),
		bob:    mintToken(t, authenticator, bobID, "bob@example.com"),
	}
}

func mintToken(t *testing.T, a *middleware.JWTAuthenticator, subject, email string) string {
	t.Helper()
	token, err := a.SignToken(middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (s *testServer) createBrand(t *testing.T, token, name string) models.Brand {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/brands", token, map[string]interface{}{
		"name":     name,
		"platform": "instagram",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[models.Brand](t, env)
}

func dealBody(brandID string, deliverables int, amount float64) map[string]interface{} {
	items := make([]map[string]interface{}, deliverables)
	for i := range items {
		items[i] = map[string]interface{}{"type": "post", "quantity": 1}
	}
	return map[string]interface{}{
		"brandId":       brandID,
		"dealName":      "Summer campaign",
		"platform":      "instagram",
		"deliverables":  items,
		"dueDate":       "2030-01-15",
		"paymentAmount": amount,
	}
}

func (s *testServer) createDeal(t *testing.T, token, brandID string) models.DealWithBrand {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/deals", token, dealBody(brandID, 2, 500))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[models.DealWithBrand](t, env)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/brands", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Unauthorized", env.Error)

	w, _ = s.do(t, http.MethodGet, "/api/v1/brands", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCrossUserIsolation(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	deal := s.createDeal(t, s.alice, brand.ID)

	w, env := s.do(t, http.MethodGet, "/api/v1/brands", s.bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[BrandListResponse](t, env)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Brands)

	for _, tc := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/api/v1/brands/" + brand.ID, nil},
		{http.MethodPut, "/api/v1/brands/" + brand.ID, map[string]string{"name": "Mine now"}},
		{http.MethodDelete, "/api/v1/brands/" + brand.ID + "?deleteDeals=true", nil},
		{http.MethodGet, "/api/v1/deals/" + deal.ID, nil},
		{http.MethodPut, "/api/v1/deals/" + deal.ID, map[string]string{"paymentStatus": "paid"}},
		{http.MethodDelete, "/api/v1/deals/" + deal.ID, nil},
	} {
		w, _ := s.do(t, tc.method, tc.path, s.bob, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
	}

	// Alice still sees everything untouched.
	w, env = s.do(t, http.MethodGet, "/api/v1/deals/"+deal.ID, s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData[models.DealWithBrand](t, env)
	assert.Equal(t, models.PaymentPending, got.PaymentStatus)
	assert.Equal(t, "Glossier", got.Brand.Name)
}

func TestCreateDeal_ForeignBrandIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")

	w, env := s.do(t, http.MethodPost, "/api/v1/deals", s.bob, dealBody(brand.ID, 1, 100))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Brand not found or does not belong to you", env.Error)

	w, env = s.do(t, http.MethodPost, "/api/v1/deals", s.alice, dealBody(missingID, 1, 100))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Brand not found or does not belong to you", env.Error)

	// Moving an existing deal onto someone else's brand is rejected the same way.
	bobBrand := s.createBrand(t, s.bob, "Bobs brand")
	deal := s.createDeal(t, s.alice, brand.ID)
	w, env = s.do(t, http.MethodPut, "/api/v1/deals/"+deal.ID, s.alice, map[string]string{"brandId": bobBrand.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Brand not found or does not belong to you", env.Error)
}

func TestDeleteBrand_CascadeFlag(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	s.createDeal(t, s.alice, brand.ID)
	s.createDeal(t, s.alice, brand.ID)
	other := s.createBrand(t, s.alice, "Other")
	kept := s.createDeal(t, s.alice, other.ID)

	for _, query := range []string{"", "?deleteDeals=false", "?deleteDeals=TRUE", "?deleteDeals=1"} {
		w, env := s.do(t, http.MethodDelete, "/api/v1/brands/"+brand.ID+query, s.alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Equal(t, "Brand has 2 associated deal(s). Set deleteDeals=true to also delete them.", env.Error, query)
	}

	w, _ := s.do(t, http.MethodDelete, "/api/v1/brands/"+brand.ID+"?deleteDeals=true", s.alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w, _ = s.do(t, http.MethodGet, "/api/v1/brands/"+brand.ID, s.alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/deals", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[DealListResponse](t, env)
	require.Len(t, list.Deals, 1)
	assert.Equal(t, kept.ID, list.Deals[0].ID)

	// A brand without deals goes without the flag; a missing one is a 404.
	empty := s.createBrand(t, s.alice, "Empty")
	w, _ = s.do(t, http.MethodDelete, "/api/v1/brands/"+empty.ID, s.alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, env = s.do(t, http.MethodDelete, "/api/v1/brands/"+missingID, s.alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Brand not found", env.Error)
}

func TestUpdateDeal_PartialKeepsDeliverables(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	deal := s.createDeal(t, s.alice, brand.ID)

	w, env := s.do(t, http.MethodPut, "/api/v1/deals/"+deal.ID, s.alice, map[string]interface{}{
		"paymentStatus": "paid",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeData[models.DealWithBrand](t, env)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, deal.Deliverables, updated.Deliverables)
	assert.Equal(t, deal.DealName, updated.DealName)
	assert.Equal(t, deal.PaymentAmount, updated.PaymentAmount)
	assert.True(t, deal.DueDate.Equal(updated.DueDate))

	w, env = s.do(t, http.MethodPut, "/api/v1/deals/"+deal.ID, s.alice, map[string]interface{}{
		"deliverables": []map[string]interface{}{{"type": "reel", "quantity": 3, "status": "posted"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated = decodeData[models.DealWithBrand](t, env)
	require.Len(t, updated.Deliverables, 1)
	assert.Equal(t, models.Deliverable{Type: models.DeliverableReel, Quantity: 3, Status: models.DeliverablePosted}, updated.Deliverables[0])
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestListDeals_Pagination(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	for i := 0; i < 5; i++ {
		s.createDeal(t, s.alice, brand.ID)
	}

	tests := []struct {
		query   string
		count   int
		limit   int
		skip    int
		hasMore bool
	}{
		{"", 5, 50, 0, false},
		{"?limit=2", 2, 2, 0, true},
		{"?limit=2&skip=2", 2, 2, 2, true},
		{"?limit=2&skip=4", 1, 2, 4, false},
		{"?skip=10", 0, 50, 10, false},
		{"?skip=-3&limit=abc", 5, 50, 0, false},
		{"?limit=1000", 5, 100, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, env := s.do(t, http.MethodGet, "/api/v1/deals"+tt.query, s.alice, nil)
			require.Equal(t, http.StatusOK, w.Code)
			list := decodeData[DealListResponse](t, env)
			assert.Len(t, list.Deals, tt.count)
			assert.NotNil(t, list.Deals)
			assert.Equal(t, Pagination{Total: 5, Limit: tt.limit, Skip: tt.skip, HasMore: tt.hasMore}, list.Pagination)
			assert.Equal(t, list.Pagination.Skip+len(list.Deals) < list.Pagination.Total, list.Pagination.HasMore)
		})
	}
}

func TestListDeals_FiltersAndSort(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	for _, amount := range []float64{300, 100, 200} {
		w, _ := s.do(t, http.MethodPost, "/api/v1/deals", s.alice, dealBody(brand.ID, 1, amount))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	paid := s.createDeal(t, s.alice, brand.ID)
	w, _ := s.do(t, http.MethodPut, "/api/v1/deals/"+paid.ID, s.alice, map[string]string{"paymentStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/deals?status=paid", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[DealListResponse](t, env)
	require.Len(t, list.Deals, 1)
	assert.Equal(t, paid.ID, list.Deals[0].ID)

	// Invalid filters are ignored.
	w, env = s.do(t, http.MethodGet, "/api/v1/deals?status=bogus&platform=myspace", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, decodeData[DealListResponse](t, env).Pagination.Total)

	w, env = s.do(t, http.MethodGet, "/api/v1/deals?status=pending&sort=paymentAmount", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeData[DealListResponse](t, env)
	require.Len(t, list.Deals, 3)
	assert.Equal(t, []float64{100, 200, 300}, []float64{
		list.Deals[0].PaymentAmount, list.Deals[1].PaymentAmount, list.Deals[2].PaymentAmount,
	})
}

func TestDeal_BrandExpansionRoundTrip(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodPost, "/api/v1/brands", s.alice, map[string]interface{}{
		"name":            "  Glossier  ",
		"instagramHandle": "@glossier",
		"platform":        "instagram",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	brand := decodeData[models.Brand](t, env)
	assert.Equal(t, "Glossier", brand.Name)

	created := s.createDeal(t, s.alice, brand.ID)
	require.NotNil(t, created.Brand)
	want := models.BrandSummary{ID: brand.ID, Name: "Glossier", InstagramHandle: "@glossier", Platform: models.PlatformInstagram}
	assert.Equal(t, want, *created.Brand)
	assert.Equal(t, brand.ID, created.BrandID)

	w, env = s.do(t, http.MethodGet, "/api/v1/deals/"+created.ID, s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeData[models.DealWithBrand](t, env)
	assert.Equal(t, want, *fetched.Brand)

	w, env = s.do(t, http.MethodGet, "/api/v1/deals", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[DealListResponse](t, env)
	require.Len(t, list.Deals, 1)
	assert.Equal(t, want, *list.Deals[0].Brand)

	// Uppercase ids resolve to the same record.
	w, _ = s.do(t, http.MethodGet, "/api/v1/deals/"+strings.ToUpper(created.ID), s.alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateDeal_Boundaries(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")

	tests := []struct {
		name         string
		deliverables int
		amount       float64
		status       int
		field        string
		message      string
	}{
		{"20 deliverables", 20, 100, http.StatusCreated, "", ""},
		{"21 deliverables", 21, 100, http.StatusBadRequest, "deliverables", "Cannot have more than 20 deliverables"},
		{"no deliverables", 0, 100, http.StatusBadRequest, "deliverables", "At least one deliverable is required"},
		{"max amount", 1, 10000000, http.StatusCreated, "", ""},
		{"over max amount", 1, 10000001, http.StatusBadRequest, "paymentAmount", "Payment amount exceeds maximum"},
		{"zero amount", 1, 0, http.StatusCreated, "", ""},
		{"negative amount", 1, -1, http.StatusBadRequest, "paymentAmount", "Payment amount cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodPost, "/api/v1/deals", s.alice, dealBody(brand.ID, tt.deliverables, tt.amount))
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusBadRequest {
				return
			}
			assert.Equal(t, "Validation failed", env.Error)
			assert.Contains(t, env.Errors, validation.FieldError{Field: tt.field, Message: tt.message})
		})
	}
}

func TestValidationErrors(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")

	t.Run("nested field path", func(t *testing.T) {
		body := dealBody(brand.ID, 2, 100)
		body["deliverables"].([]map[string]interface{})[1]["quantity"] = 0
		w, env := s.do(t, http.MethodPost, "/api/v1/deals", s.alice, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "deliverables.1.quantity", env.Errors[0].Field)
	})

	t.Run("fractional quantity keeps row index", func(t *testing.T) {
		body := dealBody(brand.ID, 2, 100)
		body["deliverables"].([]map[string]interface{})[1]["quantity"] = 1.5
		w, env := s.do(t, http.MethodPost, "/api/v1/deals", s.alice, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []validation.FieldError{{Field: "deliverables.1.quantity", Message: "Expected a whole number"}}, env.Errors)
	})

	t.Run("malformed body", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/brands", s.alice, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", env.Error)
	})

	t.Run("invalid id before body", func(t *testing.T) {
		w, env := s.do(t, http.MethodPut, "/api/v1/brands/not-an-id", s.alice, `garbage`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid brand ID format", env.Error)

		w, env = s.do(t, http.MethodGet, "/api/v1/deals/123", s.alice, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid deal ID format", env.Error)
	})

	t.Run("duplicate brand name", func(t *testing.T) {
		w, env := s.do(t, http.MethodPost, "/api/v1/brands", s.alice, map[string]string{"name": "GLOSSIER", "platform": "youtube"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "A record with this value already exists", env.Error)

		// Another user may use the same name.
		w, _ = s.do(t, http.MethodPost, "/api/v1/brands", s.bob, map[string]string{"name": "Glossier", "platform": "youtube"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestGetBrand_DealCountIsOwnerScoped(t *testing.T) {
	s := newTestServer(t)
	brand := s.createBrand(t, s.alice, "Glossier")
	s.createDeal(t, s.alice, brand.ID)

	// A record that references alice's brand but belongs to bob must not be counted.
	require.NoError(t, s.store.Deals(bobID).Create(context.Background(), &models.Deal{
		BrandID:       brand.ID,
		DealName:      "Stray",
		Platform:      models.PlatformInstagram,
		PaymentStatus: models.PaymentPending,
	}))

	w, env := s.do(t, http.MethodGet, "/api/v1/brands/"+brand.ID, s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData[models.BrandWithDealCount](t, env)
	assert.Equal(t, 1, got.DealCount)
	assert.Equal(t, "Glossier", got.Name)
}

func TestListBrands_Query(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"Zara", "adidas", "Nike", "A.I. Labs"} {
		s.createBrand(t, s.alice, name)
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/brands?search=a.i", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[BrandListResponse](t, env)
	require.Len(t, list.Brands, 1)
	assert.Equal(t, "A.I. Labs", list.Brands[0].Name)

	w, env = s.do(t, http.MethodGet, "/api/v1/brands?limit=2&sort=bogus", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeData[BrandListResponse](t, env)
	assert.Equal(t, 4, list.Total)
	assert.Len(t, list.Brands, 2)

	w, env = s.do(t, http.MethodGet, "/api/v1/brands?platform=youtube", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeData[BrandListResponse](t, env).Total)
}

func TestUsersAndSummary(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/users/me", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeData[models.User](t, env)
	assert.Equal(t, aliceID, me.ID)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, models.PlanFree, me.Plan)

	w, env = s.do(t, http.MethodPut, "/api/v1/users/me/plan", s.alice, map[string]string{"plan": "Studio"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.PlanStudio, decodeData[models.User](t, env).Plan)

	w, env = s.do(t, http.MethodPut, "/api/v1/users/me/plan", s.alice, map[string]string{"plan": "enterprise"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Error)

	brand := s.createBrand(t, s.alice, "Glossier")
	s.createDeal(t, s.alice, brand.ID)
	s.createDeal(t, s.bob, s.createBrand(t, s.bob, "Bobs").ID)

	w, env = s.do(t, http.MethodGet, "/api/v1/deals/summary", s.alice, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decodeData[models.DealSummary](t, env)
	assert.Equal(t, 1, summary.TotalDeals)
	assert.Equal(t, 500.0, summary.Amounts.Expected)
	assert.Equal(t, 500.0, summary.Amounts.Outstanding)
	assert.Equal(t, 2, summary.Deliverables.Total)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "UP", health.Status)

	s.do(t, http.MethodGet, "/api/v1/brands", s.alice, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`creatorflow_http_requests_total{method="GET",path="%s",status="200"}`, "/api/v1/brands"))
}
