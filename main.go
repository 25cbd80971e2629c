// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cristalclean/api/config"
	"cristalclean/api/content"
	"cristalclean/api/handlers"
	"cristalclean/api/middleware"
	"cristalclean/api/storage"
	"cristalclean/api/store"
	"cristalclean/api/utils"
)

func main() {
	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize storage and stores ---
	files, err := storage.NewClient(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	events := store.NewEventStore(files)
	events.Load()

	clicks := store.NewContactClickLedger(files)
	clicks.Load()

	chats := store.NewChatStore(files)
	chats.Load()

	settings := store.NewSettingsStore(files)
	settings.Load()

	posts := content.LoadLibrary(cfg.ContentDir)
	tokens := utils.NewTokenStore()

	// --- Initialize handlers ---
	tracking := handlers.NewTrackingHandlers(events, clicks, chats)
	admin := handlers.NewAdminHandlers(cfg, settings, tokens)
	chat := handlers.NewChatHandlers(cfg.ChatbotURL, chats)
	blog := handlers.NewBlogHandlers(posts)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	api := r.Group("/api")
	{
		api.POST("/track", tracking.Track)
		api.POST("/chat", chat.Proxy)
		api.POST("/chat/session", chat.SaveSession)
		api.GET("/blog", blog.List)
		api.GET("/blog/:slug", blog.Get)
		api.GET("/settings", admin.GetSettings)
		api.POST("/admin/login", admin.Login)

		protected := api.Group("/admin")
		protected.Use(middleware.AuthRequired(cfg.JWTSecret, tokens))
		{
			protected.POST("/logout", admin.Logout)
			protected.GET("/insights", tracking.GetInsights)
			protected.GET("/visitors/:id", tracking.GetVisitorDetail)
			protected.GET("/leads", tracking.GetLeads)
			protected.PUT("/settings", admin.UpdateSettings)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("CristalClean API server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Flush the pending analytics snapshot before exit.
	events.Close()
	log.Println("Server exiting.")
}
