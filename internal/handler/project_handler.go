package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "pdfhub/internal/errors"
	"pdfhub/internal/model"
	"pdfhub/internal/service"
)

// ProjectHandler handles project creation, listing and file viewing.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ShowCreate renders the project upload page.
func (h *ProjectHandler) ShowCreate(c echo.Context) error {
	return c.Render(http.StatusOK, "create_project.html", nil)
}

// Create godoc
// @Summary Upload a PDF project
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param title formData string true "Project title"
// @Param pdf formData file true "PDF file"
// @Success 302 {string} string "redirect to /dashboard"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /create_project [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	title := c.FormValue("title")

	fh, err := c.FormFile("pdf")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "pdf file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: "cannot read uploaded file"})
	}
	defer src.Close()

	owner := usernameFromContext(c)
	if _, err := h.projectService.Create(c.Request().Context(), title, src, fh.Size, owner); err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	return c.Redirect(http.StatusFound, "/dashboard")
}

type projectListPage struct {
	Projects []model.Project
}

// ViewProjects godoc
// @Summary List all projects
// @Tags projects
// @Produce html
// @Success 200 {string} string "project listing page"
// @Router /view_projects [get]
func (h *ProjectHandler) ViewProjects(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}
	return c.Render(http.StatusOK, "view_projects.html", projectListPage{Projects: projects})
}

// ViewPDF godoc
// @Summary Stream a project's PDF inline
// @Tags projects
// @Produce application/pdf
// @Param id path int true "Project ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /view_pdf/{id} [get]
func (h *ProjectHandler) ViewPDF(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, apperrors.ErrorResponse{Error: apperrors.ErrProjectNotFound.Error()})
	}

	rc, _, err := h.projectService.OpenFile(c.Request().Context(), uint(id))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}
	defer rc.Close()

	// Inline, not forced download.
	c.Response().Header().Set(echo.HeaderContentDisposition, "inline")
	return c.Stream(http.StatusOK, "application/pdf", rc)
}
