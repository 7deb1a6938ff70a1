package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/resumatch/resumatch-backend/internal/auth"
	"github.com/resumatch/resumatch-backend/internal/config"
	"github.com/resumatch/resumatch-backend/internal/database"
	"github.com/resumatch/resumatch-backend/internal/handlers"
	"github.com/resumatch/resumatch-backend/internal/services"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	// 1. Configuration
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DBUrl)

	// 3. Core Services
	ctx := context.Background()
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.AnalysisModel, cfg.SearchModel)
	if err != nil {
		log.Fatal("Failed to create LLM service:", err)
	}
	analysisService := services.NewAnalysisService(llmService, db)
	jobSearchService := services.NewJobSearchService(llmService)
	profileService := services.NewProfileService(db)
	feedbackService := services.NewFeedbackService()

	// 4. Job Alerts (optional: disabled without Gmail credentials)
	var gmailService *gmail.Service
	if httpClient := auth.GetGmailClient(cfg.GmailCredentialsPath, cfg.GmailTokenPath); httpClient != nil {
		gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			log.Printf("⚠️ Failed to create Gmail service: %v", err)
			gmailService = nil
		} else {
			log.Println("✅ Gmail service connected")
		}
	}
	alertService := services.NewAlertService(profileService, jobSearchService, gmailService, cfg.AlertSender)
	alertService.Start()

	// 5. Handlers
	verifier := auth.NewVerifier(cfg.GoogleClientID)
	resumeHandler := handlers.NewResumeHandler(analysisService)
	jobHandler := handlers.NewJobHandler(jobSearchService, profileService, feedbackService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// 6. Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/resume/extract", resumeHandler.Extract)
		api.POST("/resume/analyze", verifier.Optional(), resumeHandler.Analyze)

		api.POST("/jobs/search", verifier.Optional(), jobHandler.SearchJobs)
		api.POST("/jobs/feedback", verifier.Optional(), jobHandler.ToggleFeedback)
		api.POST("/jobs/save", verifier.Required(), jobHandler.ToggleSave)

		api.GET("/profile", verifier.Required(), profileHandler.GetProfile)
		api.PUT("/profile", verifier.Required(), profileHandler.SaveProfile)
	}

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
