package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tarweej.app/pkg/httpresp"
	"tarweej.app/services"
)

// AuthHandler exposes the login endpoint. Everything else about identity
// lives outside this service.
type AuthHandler struct {
	auth services.IAuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{auth: services.NewAuthService()}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return httpresp.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return httpresp.BadRequest(c, "email and password are required")
	}

	token, user, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return httpresp.Error(c, err)
	}
	return httpresp.OK(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
