package main

import (
	"log"
	"net/http"

	"aavm-dashboard/clients"
	"aavm-dashboard/config"
	"aavm-dashboard/handlers"
	"aavm-dashboard/middleware"
	"aavm-dashboard/repositories"
	"aavm-dashboard/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// Initialize database. A nil handle switches persistence to the
	// in-memory token store and the flat-file dashboard snapshot.
	db := config.InitDB(cfg)

	// Initialize repositories
	var (
		articleRepo repositories.ArticleRepository
		userRepo    repositories.UserRepository
		tokenStore  repositories.TokenStore
	)
	if db != nil {
		articleRepo = repositories.NewArticleRepository(db)
		userRepo = repositories.NewUserRepository(db)
		tokenStore = repositories.NewTokenRepository(db)
	} else {
		log.Println("Running without database, token approvals are in-memory only")
		tokenStore = repositories.NewMemoryTokenStore()
	}
	fileStore := repositories.NewFileArticleStore("articles.json")

	// Initialize clients
	openaiClient := clients.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.ChatModel, cfg.ImageModel, cfg.OpenAIKey)
	mailer := clients.NewResendClient(cfg.ResendKey)
	authAPI := clients.NewAuthClient(cfg.AuthURL, cfg.AuthServiceKey)

	// Initialize services
	classifier := services.NewClassifier(config.LoadKeywords())
	workflowService := services.NewWorkflowService(articleRepo, openaiClient)
	dashboardService := services.NewDashboardService(articleRepo, fileStore)
	scraperService := services.NewScraperService(classifier)
	tokenService := services.NewTokenService(tokenStore)
	approvalService := services.NewApprovalService(tokenService, userRepo, mailer, cfg.DigestFrom, cfg.DigestTo, cfg.SiteURL)
	digestService := services.NewDigestService(articleRepo, mailer, cfg.DigestFrom, cfg.DigestTo, cfg.SiteURL)
	authService := services.NewAuthService(userRepo, authAPI)

	// Initialize handlers
	aiHandler := handlers.NewAIHandler(workflowService, dashboardService)
	articleHandler := handlers.NewArticleHandler(dashboardService)
	scrapeHandler := handlers.NewScrapeHandler(scraperService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	digestHandler := handlers.NewDigestHandler(digestService)
	authHandler := handlers.NewAuthHandler(authService, cfg.SiteURL)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Workflow API
	router.GET("/ai", aiHandler.Get)
	router.POST("/ai", aiHandler.HandleAction)

	// Scraping
	router.POST("/scrape-article", scrapeHandler.ScrapeArticle)

	// User approval
	router.GET("/approve-user", approvalHandler.ApproveUser)
	router.POST("/webhooks/user-approval", approvalHandler.HandleUserWebhook)

	// Daily digest, GET and POST for either cron flavor
	router.GET("/daily-digest", digestHandler.Run)
	router.POST("/daily-digest", digestHandler.Run)

	// Hosted-auth browser callback, redirects back into the dashboard
	router.GET("/auth/callback", authHandler.Callback)

	// Auth and article CRUD
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)

			articles := protected.Group("/articles")
			{
				articles.POST("", articleHandler.CreateArticle)
				articles.GET("", articleHandler.GetArticles)
				articles.GET("/:id", articleHandler.GetArticle)
			}
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
