package handlers

import (
	"errors"
	"filevault-backend/internal/auth"
	"filevault-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService *auth.AuthService
}

func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignupRequest represents the registration payload
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents the sign-in payload
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"deviceId"`
}

// NewTokenRequest represents the token refresh payload
type NewTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest represents the logout payload
type LogoutRequest struct {
	DeviceID string `json:"deviceId"`
}

// Signup registers a new user
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input SignupRequest
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, "invalid request body", fiber.StatusBadRequest)
	}

	user, err := h.authService.Register(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			log.Error().Err(err).Msg("Signup failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return response.Success(c, fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	}, "User registered successfully", fiber.StatusCreated)
}

// Signin authenticates a user and issues a token pair for the device
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var input SigninRequest
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, "invalid request body", fiber.StatusBadRequest)
	}
	if input.DeviceID == "" {
		return response.Error(c, "device id is required", fiber.StatusBadRequest)
	}

	accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password, input.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, auth.ErrWrongPassword):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized)
		default:
			log.Error().Err(err).Msg("Signin failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return response.Success(c, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Sign-in successful")
}

// NewToken exchanges a refresh token for a new access token
func (h *AuthHandler) NewToken(c *fiber.Ctx) error {
	var input NewTokenRequest
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, "invalid request body", fiber.StatusBadRequest)
	}

	accessToken, err := h.authService.Refresh(input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, auth.ErrTokenExpired),
			errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrTokenNotRecognized):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized)
		default:
			log.Error().Err(err).Msg("Token refresh failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return response.Success(c, fiber.Map{
		"accessToken": accessToken,
	}, "Token refreshed successfully")
}

// Logout blocks the current access token of the device
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := c.Locals("user").(*auth.Claims)

	var input LogoutRequest
	if err := c.BodyParser(&input); err != nil {
		return response.Error(c, "invalid request body", fiber.StatusBadRequest)
	}
	deviceID := input.DeviceID
	if deviceID == "" {
		deviceID = claims.DeviceID
	}

	if err := h.authService.Logout(claims.UserID, deviceID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		log.Error().Err(err).Msg("Logout failed")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}

	return response.Success(c, nil, "Logout successful")
}

// Info returns the id of the authenticated user
func (h *AuthHandler) Info(c *fiber.Ctx) error {
	claims := c.Locals("user").(*auth.Claims)

	user, err := h.authService.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("User lookup failed")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}
	if user == nil {
		return response.Error(c, "user not found", fiber.StatusBadRequest)
	}

	return response.Success(c, fiber.Map{
		"userId": user.ID,
	}, "Success")
}
