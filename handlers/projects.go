package handlers

import (
	"context"
	"net/http"
	"time"

	"aipirat/apperr"
	"aipirat/models"
	"aipirat/repository"

	"github.com/gin-gonic/gin"
)

func ListProjects(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := repo.GetProjects(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func GetProject(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, found, err := repo.GetProjectByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func CreateProject(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := saveProject(c.Request.Context(), repo, "", req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

// UpdateProject overwrites the project with the path id. An unknown id is
// stored as a new project under that id.
func UpdateProject(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		project, err := saveProject(c.Request.Context(), repo, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(repo *repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

// saveProject stores req under id. Editing keeps the original creation time;
// a new project is stamped now.
func saveProject(ctx context.Context, repo *repository.ProjectRepository, id string, req models.SaveProjectRequest) (models.Project, error) {
	if req.Title == "" {
		return models.Project{}, apperr.New(apperr.CodeInvalid, "title is required")
	}

	createdAt := time.Now().UnixMilli()
	if id != "" {
		existing, found, err := repo.GetProjectByID(ctx, id)
		if err != nil {
			return models.Project{}, err
		}
		if found {
			createdAt = existing.CreatedAt
		}
	}

	return repo.SaveProject(ctx, req.ToProject(id, createdAt))
}
