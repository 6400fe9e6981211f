package handler

import (
	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	CompanyID *string `json:"company_id" binding:"omitempty,uuid"`
}

type updateUserRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Phone         *string `json:"phone"`
	IsGlobalAdmin *bool   `json:"is_global_admin"`
	CompanyID     *string `json:"company_id" binding:"omitempty,uuid"`
}

// Create creates a user
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	companyID, err := parseOptionalUUID(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company_id")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), appidentity.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		CompanyID: companyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Update updates a user. The global-admin guard inside the service rejects
// privilege changes from non-platform-admin actors.
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	actor := getActor(c)
	if !actor.IsPlatformAdmin && actor.UserID != id {
		h.Forbidden(c)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	companyID, err := parseOptionalUUID(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company_id")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), appidentity.UpdateUserInput{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		IsGlobalAdmin: req.IsGlobalAdmin,
		CompanyID:     companyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Get returns a user
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	actor := getActor(c)
	if !actor.IsPlatformAdmin && actor.UserID != id {
		h.Forbidden(c)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete deletes a user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if !getActor(c).IsPlatformAdmin {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
