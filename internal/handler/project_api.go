package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/service"
)

// ListProjects returns the stored collection.
func (a *API) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": a.store.Load()})
}

// UpsertProject creates or updates a project from a JSON body.
func (a *API) UpsertProject(c *gin.Context) {
	var payload service.ProjectForm
	if !bindJSON(c, &payload, "invalid request payload") {
		return
	}

	result, err := a.intake.Submit(payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectFieldsMissing):
			respondError(c, http.StatusBadRequest, result.Status)
		default:
			respondError(c, http.StatusInternalServerError, statusSaveFailed)
		}
		return
	}

	status := http.StatusOK
	if result.Outcome == service.UpsertCreated {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message": result.Status,
		"outcome": result.Outcome,
		"project": result.Project,
	})
}

// DeleteProjectByID removes every project matching the path id.
func (a *API) DeleteProjectByID(c *gin.Context) {
	result, err := a.intake.Delete(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectIDMissing):
			respondError(c, http.StatusBadRequest, result.Status)
		default:
			respondError(c, http.StatusInternalServerError, statusDeleteFailed)
		}
		return
	}

	if result.Outcome == service.DeleteNotFound {
		respondError(c, http.StatusNotFound, result.Status)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Status})
}

// FetchRemoteProjects proxies the remote source without touching the store.
func (a *API) FetchRemoteProjects(c *gin.Context) {
	projects, err := a.remote.Fetch(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusBadGateway, service.StatusRemoteFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
