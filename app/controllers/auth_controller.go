package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	"github.com/shashiranjanraj/vastra/pkg/bind"
	"github.com/shashiranjanraj/vastra/pkg/response"
)

// AuthController exposes authentication and profile routes. Unlike the rest
// of the API, auth endpoints speak {"success": bool, "message": ...} bodies.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type authRequest struct {
	Token string `json:"token" validate:"required"`
	Role  string `json:"role" validate:"nullable,in=user,admin"`
	Name  string `json:"name"`
}

type profileUpdateRequest struct {
	Name string `json:"name" validate:"required"`
}

func authError(w http.ResponseWriter, status int, message string) {
	response.JSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// Authenticate handles POST /auth. First contact creates the user document
// and answers 201; a returning user gets 200 with their stored role.
func (c *AuthController) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		authError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		authError(w, http.StatusBadRequest, validationMessage(errs))
		return
	}

	result, err := c.auth.Authenticate(r.Context(), req.Token, req.Role, req.Name)
	if err != nil {
		authError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}

	status := http.StatusOK
	message := "Login successful"
	if result.Created {
		status = http.StatusCreated
		message = "User registered"
	}
	response.JSON(w, status, map[string]interface{}{
		"success": true,
		"message": message,
		"userId":  result.UserID,
		"role":    result.Role,
	})
}

// Profile handles GET /auth/profile.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := c.auth.Profile(r.Context(), callerUID(r))
	if err != nil {
		authError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}
	response.Success(w, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// UpdateProfile handles PUT /auth/profile. Only the display name is mutable.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	errs, err := bind.JSON(r, &req)
	if err != nil {
		authError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		authError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := c.auth.UpdateProfile(r.Context(), callerUID(r), req.Name); err != nil {
		authError(w, apperr.HTTPStatus(err), apperr.Message(err))
		return
	}
	response.Success(w, map[string]interface{}{
		"success": true,
		"message": "Profile updated",
	})
}
