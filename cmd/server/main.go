package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/projectgallery/internal/config"
	"github.com/projectgallery/internal/db"
	"github.com/projectgallery/internal/handler"
	"github.com/projectgallery/internal/metrics"
	"github.com/projectgallery/internal/router"
	"github.com/projectgallery/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	seed := service.DefaultSeedProjects()
	if cfg.SeedFile != "" {
		seed, err = service.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to load seed file: %v", err)
		}
	}

	recorder := metrics.New()
	api, err := handler.NewAPI(gdb, handler.Options{
		StorageKey:    cfg.StorageKey,
		RemoteURL:     cfg.RemoteURL,
		RemoteTimeout: cfg.RemoteTimeout,
		Seed:          seed,
		ViewCacheSize: cfg.ViewCacheSize,
		UploadDir:     cfg.UploadDir,
		UploadURL:     cfg.UploadURLPath,
		Metrics:       recorder,
	})
	if err != nil {
		log.Fatalf("failed to initialize handlers: %v", err)
	}

	seeded, err := api.SeedStore()
	if err != nil {
		log.Fatalf("failed to seed project store: %v", err)
	}
	if seeded {
		log.Printf("seeded %d projects into slot %q", len(seed), api.Store().Key())
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURLPath: cfg.UploadURLPath,
		Metrics:       recorder,
	})
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
