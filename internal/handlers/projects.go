package handlers

import (
	"errors"
	"net/http"

	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db             *gorm.DB
	projectService services.ProjectService
}

type ProjectCreateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func NewProjectHandler(db *gorm.DB, projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{db: db, projectService: projectService}
}

// ListProjects returns every project. Listing is deliberately not scoped to
// the caller.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.GetProjects(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	project, err := h.projectService.CreateProject(h.db, req.Name, req.Description, callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(h.db, id)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	var req ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	project, err := h.projectService.UpdateProject(h.db, id, services.ProjectWrite{
		Name:        &req.Name,
		Description: &req.Description,
	})
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) PatchProject(c *gin.Context) {
	id, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	var update services.ProjectWrite
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	if update.Name != nil && *update.Name == "" {
		respondValidation(c, map[string]string{"name": "This field may not be blank."})
		return
	}

	project, err := h.projectService.UpdateProject(h.db, id, update)
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := paramID(c, "project_id", "Project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(h.db, id); err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func handleProjectError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondNotFound(c, "Project")
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process project request"})
}
