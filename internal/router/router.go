package router

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/handler"
	"github.com/projectgallery/internal/metrics"
	"github.com/projectgallery/web"
)

// Options carries the router-level settings.
type Options struct {
	SessionSecret string
	UploadDir     string
	UploadURLPath string
	Metrics       *metrics.Recorder
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(opts.Metrics.Middleware())

	secret := strings.TrimSpace(opts.SessionSecret)
	if secret == "" {
		secret = "projectgallery-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("projectgallery_session", store))

	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(web.Files, "template/*.html")))

	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	uploadURL := "/" + strings.Trim(strings.TrimSpace(opts.UploadURLPath), "/")
	if opts.UploadDir != "" && uploadURL != "/" {
		r.Static(uploadURL, opts.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/projects")
	})

	projects := r.Group("/projects")
	{
		projects.GET("", api.ShowProjects)
		projects.GET("/cards", api.ProjectCards)
		projects.POST("/load-local", api.LoadLocalProjects)
		projects.POST("/load-remote", api.LoadRemoteProjects)

		projects.GET("/manage", api.ShowManage)
		projects.POST("/manage/save", api.SaveProject)
		projects.POST("/manage/delete", api.DeleteProject)
		projects.POST("/manage/reload", api.ReloadProjects)
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/projects", api.ListProjects)
		apiGroup.POST("/projects", api.UpsertProject)
		apiGroup.GET("/projects/remote", api.FetchRemoteProjects)
		apiGroup.DELETE("/projects/:id", api.DeleteProjectByID)
		apiGroup.POST("/uploads", api.UploadImage)
	}

	return r
}
