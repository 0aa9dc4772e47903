package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pdfhub/internal/auth"
	"pdfhub/internal/handler"
	pdfhubmw "pdfhub/internal/middleware"
)

// Register wires routes and middleware. Metrics are registered on and served
// from the given registry.
func Register(
	e *echo.Echo,
	sessionService *auth.SessionService,
	registry *prometheus.Registry,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
) error {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	promMW, err := pdfhubmw.NewPrometheusMiddleware(registry)
	if err != nil {
		return err
	}
	e.Use(promMW.Handler())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", authHandler.Home)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/logo", handler.Logo)
	// Auth on the PDF stream itself is deliberately not enforced.
	e.GET("/view_pdf/:id", projectHandler.ViewPDF)

	// Protected routes: session cookie required, absence redirects to login.
	protected := e.Group("", SessionMiddleware(sessionService))
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/dashboard", userHandler.Dashboard)
	protected.GET("/profile", userHandler.Profile)
	protected.GET("/create_project", projectHandler.ShowCreate)
	protected.POST("/create_project", projectHandler.Create)
	protected.GET("/view_projects", projectHandler.ViewProjects)

	return nil
}

// SessionMiddleware validates the signed session cookie. A missing or invalid
// session redirects to the login page instead of failing hard.
func SessionMiddleware(sessionService *auth.SessionService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  sessionService.Secret(),
		TokenLookup: "cookie:" + auth.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
