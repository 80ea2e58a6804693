package main

import (
	"log"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/enshire/job-board/internal/applicant"
	"github.com/enshire/job-board/internal/config"
	"github.com/enshire/job-board/internal/database"
	"github.com/enshire/job-board/internal/email"
	"github.com/enshire/job-board/internal/handler"
	"github.com/enshire/job-board/internal/listing"
	"github.com/enshire/job-board/internal/server"
	"github.com/enshire/job-board/internal/service"
	"github.com/enshire/job-board/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	client, err := database.GetDbConn(cfg.MongoURI)
	if err != nil {
		log.Fatalf("unable to connect to mongodb: %v", err)
	}
	defer database.CloseDbConn(client)
	db := client.Database(cfg.MongoDBName)

	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.AdminEmail, cfg.NoReplyEmail, cfg.SiteName)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	resumeStore, err := storage.NewS3Store(cfg.S3AccessKeyID, cfg.S3SecretKey, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint)
	if err != nil {
		log.Fatalf("unable to initialise resume store: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	listingRepo := listing.NewRepository(db)
	applicationRepo := applicant.NewRepository(db)
	notifier := email.NewApplicationNotifier(emailClient, cfg.AdminEmail)
	svc := service.NewService(listingRepo, applicationRepo, notifier)

	svr := server.NewServer(
		cfg,
		db,
		mux.NewRouter(),
		sessionStore,
	)

	svr.RegisterRoute("/health", handler.HealthHandler(svr), []string{"GET"})

	// aggregate routes before the {id} routes so mux does not swallow them
	svr.RegisterRoute("/api/job-listings/locations", handler.JobLocationsHandler(svr, svc), []string{"GET"})
	svr.RegisterRoute("/api/job-listings/job-titles", handler.JobTitlesHandler(svr, svc), []string{"GET"})

	svr.RegisterRoute("/api/job-listings", handler.ListJobListingsHandler(svr, svc), []string{"GET"})
	svr.RegisterRoute("/api/job-listings", handler.CreateJobListingHandler(svr, svc), []string{"POST"})
	svr.RegisterRoute("/api/job-listings/{id}", handler.GetJobListingHandler(svr, svc), []string{"GET"})
	svr.RegisterRoute("/api/job-listings/{id}", handler.UpdateJobListingHandler(svr, svc), []string{"PUT"})
	svr.RegisterRoute("/api/job-listings/{id}", handler.DeleteJobListingHandler(svr, svc), []string{"DELETE"})

	svr.RegisterRoute("/api/job-applications", handler.ListJobApplicationsHandler(svr, svc), []string{"GET"})
	svr.RegisterRoute("/api/job-applications", handler.CreateJobApplicationHandler(svr, svc), []string{"POST"})
	svr.RegisterRoute("/api/job-applications/{id}", handler.GetJobApplicationHandler(svr, svc), []string{"GET"})
	svr.RegisterRoute("/api/job-applications/{id}", handler.UpdateJobApplicationHandler(svr, svc), []string{"PUT"})
	svr.RegisterRoute("/api/job-applications/{id}", handler.DeleteJobApplicationHandler(svr, svc), []string{"DELETE"})
	svr.RegisterRoute("/api/job-applications/{id}/status", handler.AppendApplicationStatusHandler(svr, svc), []string{"PUT"})

	svr.RegisterRoute("/api/resumes/uploads", handler.UploadResumeHandler(svr, resumeStore), []string{"POST"})

	log.Fatal(svr.Run())
}
