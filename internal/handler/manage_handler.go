package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/service"
)

const (
	statusSaveFailed   = "Could not save project."
	statusDeleteFailed = "Could not delete project."
)

// ShowManage renders the create/update/delete page with a preview of the
// stored projects.
func (a *API) ShowManage(c *gin.Context) {
	view := a.views.Manage(visitorID(c))
	view.RenderStored()
	a.renderManage(c, http.StatusOK, view, service.ProjectForm{}, "")
}

// SaveProject creates or updates a project from the manage form.
func (a *API) SaveProject(c *gin.Context) {
	view := a.views.Manage(visitorID(c))

	var form service.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		view.SetStatus(service.StatusFieldsMissing)
		a.renderManage(c, http.StatusBadRequest, view, form, "")
		return
	}

	result, err := a.intake.Submit(form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectFieldsMissing):
			view.SetStatus(result.Status)
			a.renderManage(c, http.StatusBadRequest, view, form, "")
		default:
			log.Printf("[manage] save project: %v", err)
			view.SetStatus(statusSaveFailed)
			a.renderManage(c, http.StatusInternalServerError, view, form, "")
		}
		return
	}

	view.RenderStored()
	view.SetStatus(result.Status)
	redirectSeeOther(c, "/projects/manage")
}

// DeleteProject removes the project named in the delete form.
func (a *API) DeleteProject(c *gin.Context) {
	view := a.views.Manage(visitorID(c))
	rawID := c.PostForm("id")

	result, err := a.intake.Delete(rawID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectIDMissing):
			view.SetStatus(result.Status)
			a.renderManage(c, http.StatusBadRequest, view, service.ProjectForm{}, rawID)
		default:
			log.Printf("[manage] delete project: %v", err)
			view.SetStatus(statusDeleteFailed)
			a.renderManage(c, http.StatusInternalServerError, view, service.ProjectForm{}, rawID)
		}
		return
	}

	view.SetStatus(result.Status)
	if result.Outcome == service.DeleteNotFound {
		a.renderManage(c, http.StatusNotFound, view, service.ProjectForm{}, rawID)
		return
	}

	view.RenderStored()
	redirectSeeOther(c, "/projects/manage")
}

// ReloadProjects re-renders the preview from storage.
func (a *API) ReloadProjects(c *gin.Context) {
	view := a.views.Manage(visitorID(c))
	view.RenderStored()
	view.SetStatus(service.StatusReloaded)
	redirectSeeOther(c, "/projects/manage")
}

func (a *API) renderManage(c *gin.Context, status int, view *service.ProjectView, form service.ProjectForm, deleteID string) {
	a.renderHTML(c, status, "manage.html", gin.H{
		"title":    "Manage projects",
		"view":     view.Snapshot(""),
		"form":     form,
		"deleteID": deleteID,
	})
}
