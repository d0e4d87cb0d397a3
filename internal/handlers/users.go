package handlers

import (
	"errors"
	"net/http"

	hr "house_rental"
	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required" example:"Alice"`
	LastName        string `json:"lastName" binding:"required" example:"Doe"`
	Email           string `json:"email" binding:"required,email" example:"a@x.com"`
	PhoneNumber     string `json:"phoneNumber" binding:"required" example:"+998901234567"`
	Password        string `json:"password" binding:"required" example:"p1"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password" example:"p1"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"p1"`
}

// ProfileRequest carries the profile fields to change.
type ProfileRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,min=1"`
}

// @Summary      Register
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "New user"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /api/users/register [post]
func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "email", req.Email)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "user, token"
// @Failure      400   {object}  map[string]string
// @Router       /api/users/login [post]
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, token, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// bad credentials are a client error here, not a guard failure
		code := statusFor(err)
		if errors.Is(err, hr.ErrAuth) {
			code = http.StatusBadRequest
		}
		h.respondErrorStatus(c, code, err, "auth_login_failed", "email", req.Email)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// @Summary      Get profile
// @Tags         users
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  models.User
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId}/profiles [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.services.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.respondError(c, err, "profile_get_failed", "user_id", c.Param("userId"))
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path      string          true  "User id"
// @Param        body    body      ProfileRequest  true  "Fields to change"
// @Success      200     {object}  models.User
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/users/{userId}/profiles [put]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	var req ProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	u, err := h.services.UpdateProfile(c.Request.Context(), c.Param("userId"), currentUser(c), service.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.respondError(c, err, "profile_update_failed", "user_id", c.Param("userId"))
		return
	}
	c.JSON(http.StatusOK, u)
}
