package handler_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pdfhub/internal/auth"
	"pdfhub/internal/handler"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
	"pdfhub/internal/router"
	"pdfhub/internal/service"
	"pdfhub/internal/storage"
	"pdfhub/web"
)

type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Project{}))

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sessionService := auth.NewSessionService("test-secret")
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, nil)
	projectService := service.NewProjectService(projectRepo, store, nil)

	authHandler := handler.NewAuthHandler(authService, sessionService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)

	require.NoError(t, router.Register(e, sessionService, prometheus.NewRegistry(), authHandler, userHandler, projectHandler))
	return &testApp{e: e, db: db}
}

func (a *testApp) postForm(path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func registerForm(username, password, email string) url.Values {
	return url.Values{
		"username": {username},
		"password": {password},
		"email":    {email},
	}
}

// sessionCookie extracts the session cookie pair from a login response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func TestAuthAndProjectFlow(t *testing.T) {
	app := newTestApp(t)
	pdfStub := []byte("%PDF-stub!") // 10 bytes

	// Register alice01.
	rec := app.postForm("/register", registerForm("alice01", "Passw0rd!", "alice@example.com"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Registration successful."}`, rec.Body.String())

	// Same username again conflicts.
	rec = app.postForm("/register", registerForm("alice01", "Passw0rd!", "alice2@example.com"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists."}`, rec.Body.String())

	// Same email again conflicts.
	rec = app.postForm("/register", registerForm("someone1", "Passw0rd!", "alice@example.com"), "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Email already exists."}`, rec.Body.String())

	// Wrong password is rejected.
	rec = app.postForm("/login", url.Values{"username": {"alice01"}, "password": {"wrongpass"}}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Incorrect username or password"}`, rec.Body.String())

	// Correct credentials start a session and redirect to the dashboard.
	rec = app.postForm("/login", url.Values{"username": {"alice01"}, "password": {"Passw0rd!"}}, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	cookie := sessionCookie(t, rec)

	// Dashboard renders the user's info.
	rec = app.get("/dashboard", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")

	// Upload a project.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Report"))
	fw, err := mw.CreateFormFile("pdf", "report.pdf")
	require.NoError(t, err)
	_, err = fw.Write(pdfStub)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create_project", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set("Cookie", cookie)
	crec := httptest.NewRecorder()
	app.e.ServeHTTP(crec, req)
	assert.Equal(t, http.StatusFound, crec.Code)
	assert.Equal(t, "/dashboard", crec.Header().Get(echo.HeaderLocation))

	// Exactly one record, owned by alice01.
	var projects []model.Project
	require.NoError(t, app.db.Find(&projects).Error)
	require.Len(t, projects, 1)
	assert.Equal(t, "Report", projects[0].Title)
	assert.Equal(t, "alice01", projects[0].Owner)

	// Listing shows it.
	rec = app.get("/view_projects", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Report")

	// The stored file streams back byte-identical.
	rec = app.get(fmt.Sprintf("/view_pdf/%d", projects[0].ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, pdfStub, body)

	// Logout clears the session; protected routes redirect to login again.
	rec = app.get("/logout", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = app.get("/dashboard", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRegisterValidationEnvelope(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		form     url.Values
		expected string
	}{
		{"short username", registerForm("alice", "Passw0rd!", "a@b.c"), "Username must be at least 6 characters."},
		{"short password", registerForm("alice01", "Pw0!", "a@b.c"), "Password must be at least 8 characters."},
		{"no digit", registerForm("alice01", "Password!", "a@b.c"), "Password must contain at least 1 number."},
		{"no symbol", registerForm("alice01", "Passw0rd", "a@b.c"), "Password must contain at least 1 symbol (!@#$%^&*)."},
		{"no email", registerForm("alice01", "Passw0rd!", ""), "Email is required."},
		{"bad email", registerForm("alice01", "Passw0rd!", "nope"), "Email must contain @."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.postForm("/register", tt.form, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.expected), rec.Body.String())
		})
	}
}

func TestProtectedRoutesRedirect(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/profile", "/create_project", "/view_projects"} {
		rec := app.get(path, "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), path)
	}

	// A forged session token is rejected the same way.
	forged, err := auth.NewSessionService("other-secret").Issue("alice01")
	require.NoError(t, err)
	rec := app.get("/dashboard", auth.CookieName+"="+forged)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestUnauthenticatedCreateProjectRejected(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Report"))
	fw, err := mw.CreateFormFile("pdf", "report.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-stub!"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create_project", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	// No null-owner fallback: the request never reaches the workflow.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	var count int64
	require.NoError(t, app.db.Model(&model.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestViewPDFUnknownID(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/view_pdf/12345", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.get("/view_pdf/not-a-number", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHomeRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogoServed(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/logo", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}
