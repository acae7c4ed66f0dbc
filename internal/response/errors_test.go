package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/validation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", validation.Errors{{Field: "name", Message: "Name is required"}}, http.StatusBadRequest, MsgValidationFailed},
		{"malformed body", fmt.Errorf("%w: eof", validation.ErrMalformedBody), http.StatusBadRequest, MsgInvalidBody},
		{"unauthorized", core.ErrUnauthorized, http.StatusUnauthorized, MsgUnauthorized},
		{"duplicate", fmt.Errorf("create brand: %w", db.ErrDuplicate), http.StatusBadRequest, MsgDuplicate},
		{"invalid brand id", &core.InvalidIDError{Entity: "brand"}, http.StatusBadRequest, "Invalid brand ID format"},
		{"invalid deal id", fmt.Errorf("wrap: %w", &core.InvalidIDError{Entity: "deal"}), http.StatusBadRequest, "Invalid deal ID format"},
		{"brand not owned", fmt.Errorf("%w: brand 'x'", core.ErrBrandNotOwned), http.StatusBadRequest, MsgBrandNotOwned},
		{"has deals", &core.BrandHasDealsError{Count: 2}, http.StatusBadRequest, "Brand has 2 associated deal(s). Set deleteDeals=true to also delete them."},
		{"brand not found", fmt.Errorf("%w: id", core.ErrBrandNotFound), http.StatusNotFound, MsgBrandNotFound},
		{"deal not found", fmt.Errorf("%w: id", core.ErrDealNotFound), http.StatusNotFound, MsgDealNotFound},
		{"user not found", core.ErrUserNotFound, http.StatusNotFound, MsgUserNotFound},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError, MsgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg, _ := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorWritesEnvelopeWithoutLeakingCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("mongo: secret connection string in here"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, MsgInternal, body.Error)
	assert.Len(t, c.Errors, 1)
}

func TestErrorIncludesFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, validation.Errors{{Field: "deliverables.0.quantity", Message: "Quantity must be at least 1"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "deliverables.0.quantity", body.Errors[0].Field)
}

func TestSuccessEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"}}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
