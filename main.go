package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mzane42/clinica-scanner/auth"
	"github.com/mzane42/clinica-scanner/client"
	"github.com/mzane42/clinica-scanner/config"
	"github.com/mzane42/clinica-scanner/database"
	"github.com/mzane42/clinica-scanner/handlers"
	"github.com/mzane42/clinica-scanner/sessions"
)

func main() {
	cfg := config.Load()

	// databases
	database.Connect(cfg.JournalDBPath)
	database.ConnectGORM(cfg.SessionsDBPath)

	// auth + webhook client
	auth.Init(cfg)
	apiClient := client.New(cfg)
	handlers.Init(cfg, apiClient)

	sessions.StartSweeper(time.Hour)

	// router
	router := gin.Default()
	router.POST("/auth/login", auth.Login)
	router.POST("/auth/logout", auth.Logout)
	router.GET("/auth/session", auth.Session)

	authorized := router.Group("/", auth.RequireSession())
	authorized.POST("/scan", handlers.Scan)
	authorized.POST("/search", handlers.Search)
	authorized.POST("/dismiss", handlers.Dismiss)
	authorized.GET("/stats", handlers.Stats)
	authorized.GET("/scans/recent", handlers.RecentScans)
	authorized.GET("/live", handlers.Live)

	router.Run(":" + cfg.Port)
}
