// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/phishsim-backend/internal/auth"
	"github.com/unclebandit/phishsim-backend/internal/controller"
	"github.com/unclebandit/phishsim-backend/internal/db"
	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/repository"
	"github.com/unclebandit/phishsim-backend/internal/service"
	"github.com/unclebandit/phishsim-backend/internal/token"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	db.Migrate()

	q := queue.NewInMemoryQueue()
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		queue.StartClickEventForwarder(q, amqpURL)
	} else {
		queue.StartClickEventLogger(q)
	}

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	targetRepo := &repository.TargetRepository{DB: db.DB}
	clickRepo := &repository.ClickRepository{DB: db.DB}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		ClickRepo:    clickRepo,
	}
	importService := &service.ImportService{
		CampaignRepo: campaignRepo,
		TargetRepo:   targetRepo,
		Tokens:       token.Generator{},
	}
	clickService := &service.ClickService{
		TargetRepo: targetRepo,
		ClickRepo:  clickRepo,
		Queue:      q,
	}
	reportService := &service.ReportService{
		CampaignRepo: campaignRepo,
		TargetRepo:   targetRepo,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		ImportService:   importService,
		ReportService:   reportService,
		BaseURL:         os.Getenv("BASE_URL"),
	}
	trackController := &controller.TrackController{
		ClickService: clickService,
	}

	admin := &auth.Authenticator{Creds: auth.Credentials{
		Username: getenv("ADMIN_USER", "admin"),
		Password: getenv("ADMIN_PASS", "admin123"),
	}}

	r := chi.NewRouter()

	// Public tracking route
	r.Get("/t/{token}", trackController.Track)

	// Operator routes
	r.Group(func(r chi.Router) {
		r.Use(admin.Middleware)
		r.Post("/campaign/create", campaignController.CreateCampaign)
		r.Get("/campaigns", campaignController.ListCampaigns)
		r.Post("/campaign/{id}/upload", campaignController.UploadTargets)
		r.Get("/campaign/{id}/export", campaignController.ExportReport)
		r.Get("/campaign/{id}/stats", campaignController.GetCampaignStats)
		r.Get("/email/{id}", campaignController.PreviewEmail)
	})

	port := getenv("PORT", "8080")
	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
