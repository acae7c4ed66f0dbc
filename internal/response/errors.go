package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/db"
	"creatorflow-backend-go/internal/validation"
)

// Messages sent to clients.
const (
	MsgValidationFailed = "Validation failed"
	MsgInvalidBody      = "Invalid request body"
	MsgUnauthorized     = "Unauthorized"
	MsgDuplicate        = "A record with this value already exists"
	MsgBrandNotOwned    = "Brand not found or does not belong to you"
	MsgBrandNotFound    = "Brand not found"
	MsgDealNotFound     = "Deal not found"
	MsgUserNotFound     = "User not found"
	MsgInternal         = "Internal server error"
)

// Classify maps an error onto a status code, a client message and optional
// field errors. Unknown errors become a generic 500.
func Classify(err error) (int, string, []validation.FieldError) {
	var fieldErrs validation.Errors
	var invalidID *core.InvalidIDError
	var hasDeals *core.BrandHasDealsError

	switch {
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, MsgValidationFailed, fieldErrs
	case errors.Is(err, validation.ErrMalformedBody):
		return http.StatusBadRequest, MsgInvalidBody, nil
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, MsgUnauthorized, nil
	case errors.Is(err, db.ErrDuplicate):
		return http.StatusBadRequest, MsgDuplicate, nil
	case errors.As(err, &invalidID):
		return http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", invalidID.Entity), nil
	case errors.Is(err, core.ErrInvalidID):
		return http.StatusBadRequest, "Invalid ID format", nil
	case errors.Is(err, core.ErrBrandNotOwned):
		return http.StatusBadRequest, MsgBrandNotOwned, nil
	case errors.As(err, &hasDeals):
		return http.StatusBadRequest, hasDeals.Error(), nil
	case errors.Is(err, core.ErrBrandNotFound):
		return http.StatusNotFound, MsgBrandNotFound, nil
	case errors.Is(err, core.ErrDealNotFound):
		return http.StatusNotFound, MsgDealNotFound, nil
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound, MsgUserNotFound, nil
	default:
		return http.StatusInternalServerError, MsgInternal, nil
	}
}

// Error classifies err and writes the failure envelope. The cause is
// attached to the gin context so the request logger records it; it never
// reaches the client for 5xx responses.
func Error(c *gin.Context, err error) {
	status, message, fields := Classify(err)
	_ = c.Error(err)
	Fail(c, status, message, fields)
}
