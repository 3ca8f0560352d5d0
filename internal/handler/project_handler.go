package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/service"
)

// ShowProjects renders the gallery page with the visitor's current cards.
func (a *API) ShowProjects(c *gin.Context) {
	view := a.views.Gallery(visitorID(c))
	a.renderHTML(c, http.StatusOK, "projects.html", gin.H{
		"title": "Projects",
		"view":  view.Snapshot(c.Query("q")),
	})
}

// ProjectCards returns only the card list, filtered by q, for live search.
func (a *API) ProjectCards(c *gin.Context) {
	view := a.views.Gallery(visitorID(c))
	a.renderHTML(c, http.StatusOK, "project_cards.html", gin.H{
		"view": view.Snapshot(c.Query("q")),
	})
}

// LoadLocalProjects seeds an empty store and renders what it holds.
func (a *API) LoadLocalProjects(c *gin.Context) {
	view := a.views.Gallery(visitorID(c))

	if _, err := a.SeedStore(); err != nil {
		log.Printf("[gallery] seed store: %v", err)
		view.SetStatus(service.StatusLocalFailed)
		redirectSeeOther(c, "/projects")
		return
	}

	view.RenderStored()
	view.SetStatus(service.StatusLocalLoaded)
	redirectSeeOther(c, "/projects")
}

// LoadRemoteProjects renders projects fetched from the remote source. On
// failure the cards already on screen stay as they are.
func (a *API) LoadRemoteProjects(c *gin.Context) {
	view := a.views.Gallery(visitorID(c))

	projects, err := a.remote.Fetch(c.Request.Context())
	if err != nil {
		view.SetStatus(service.StatusRemoteFailed)
		redirectSeeOther(c, "/projects")
		return
	}

	view.Render(projects)
	view.SetStatus(service.StatusRemoteLoaded)
	redirectSeeOther(c, "/projects")
}
