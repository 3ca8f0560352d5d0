package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/db"
	"github.com/projectgallery/internal/metrics"
	"github.com/projectgallery/internal/service"
	"gorm.io/gorm"
)

// Options configures the services behind the handlers.
type Options struct {
	StorageKey    string
	RemoteURL     string
	RemoteTimeout time.Duration
	Seed          []db.Project
	ViewCacheSize int
	UploadDir     string
	UploadURL     string
	Metrics       *metrics.Recorder
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	store     *service.ProjectStore
	intake    *service.ProjectIntake
	views     *service.ViewRegistry
	remote    *service.RemoteProjectSource
	seed      []db.Project
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) (*API, error) {
	store := service.NewProjectStore(gdb, opts.StorageKey, opts.Metrics)

	views, err := service.NewViewRegistry(store, opts.ViewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init views: %w", err)
	}

	seed := opts.Seed
	if len(seed) == 0 {
		seed = service.DefaultSeedProjects()
	}

	return &API{
		store:     store,
		intake:    service.NewProjectIntake(store),
		views:     views,
		remote:    service.NewRemoteProjectSource(opts.RemoteURL, opts.RemoteTimeout, opts.Metrics),
		seed:      seed,
		uploadDir: opts.UploadDir,
		uploadURL: opts.UploadURL,
	}, nil
}

// Store exposes the project store, mainly for startup seeding and tests.
func (a *API) Store() *service.ProjectStore {
	return a.store
}

// Remote exposes the remote source so callers can swap its HTTP client.
func (a *API) Remote() *service.RemoteProjectSource {
	return a.remote
}

// SeedStore writes the seed projects when the slot is still empty.
func (a *API) SeedStore() (bool, error) {
	return a.store.SeedIfEmpty(a.seed)
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["title"]; !exists {
		payload["title"] = "Projects"
	}
	c.HTML(status, template, payload)
}
