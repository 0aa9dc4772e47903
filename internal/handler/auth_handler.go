package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"pdfhub/internal/auth"
	apperrors "pdfhub/internal/errors"
	"pdfhub/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService    service.AuthService
	sessionService *auth.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessionService *auth.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessionService: sessionService}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Email    string `form:"email" json:"email"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Home redirects to the login page.
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// ShowRegister renders the registration page.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", nil)
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username (min 6 characters)"
// @Param password formData string true "Password (min 8 characters, 1 digit, 1 symbol)"
// @Param email formData string true "Email"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email); err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "Registration successful."})
}

// ShowLogin renders the login page.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// Login godoc
// @Summary Log in and start a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302 {string} string "redirect to /dashboard with session cookie"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: apperrors.ErrInvalidCredentials.Error()})
	}

	user, err := h.authService.VerifyCredentials(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	token, err := h.sessionService.Issue(user.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apperrors.ErrorResponse{Error: "failed to start session"})
	}

	c.SetCookie(auth.NewCookie(token))
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout godoc
// @Summary End the session
// @Tags auth
// @Success 302 {string} string "redirect to /login with cleared session cookie"
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(auth.ExpiredCookie())
	return c.Redirect(http.StatusFound, "/login")
}

// usernameFromContext returns the session username set by the route
// protection middleware, or "" when the route is unprotected.
func usernameFromContext(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return ""
	}
	return claims.Username
}
