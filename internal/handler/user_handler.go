package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pdfhub/internal/service"
	"pdfhub/web"
)

// UserHandler serves the logged-in user pages.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type profilePage struct {
	Username  string
	UserEmail string
}

func (h *UserHandler) renderUserPage(c echo.Context, template string) error {
	username := usernameFromContext(c)
	user, err := h.userService.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
	}
	return c.Render(http.StatusOK, template, profilePage{
		Username:  user.Username,
		UserEmail: user.Email,
	})
}

// Dashboard renders the dashboard page for the session user.
func (h *UserHandler) Dashboard(c echo.Context) error {
	return h.renderUserPage(c, "dashboard.html")
}

// Profile renders the profile page for the session user.
func (h *UserHandler) Profile(c echo.Context) error {
	return h.renderUserPage(c, "profile.html")
}

// Logo serves the embedded logo image.
func Logo(c echo.Context) error {
	return c.Blob(http.StatusOK, "image/png", web.Logo)
}
