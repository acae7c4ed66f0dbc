package api

import (
	"github.com/gin-gonic/gin"

	"creatorflow-backend-go/internal/core"
	"creatorflow-backend-go/internal/middleware"
	"creatorflow-backend-go/internal/models"
	"creatorflow-backend-go/internal/response"
	"creatorflow-backend-go/internal/validation"
)

// UserHandler handles user-specific API requests.
type UserHandler struct {
	userService core.UserService
	validator   *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, v *validation.Validator) *UserHandler {
	return &UserHandler{userService: us, validator: v}
}

// GetCurrentUser handles GET /users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, core.ErrUnauthorized)
		return
	}
	response.OK(c, user)
}

// ChangePlan handles PUT /users/me/plan
func (h *UserHandler) ChangePlan(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req models.ChangePlanRequest
	if err := h.validator.BindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userService.ChangePlan(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
