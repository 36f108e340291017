package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/boazcstrike/silayan-laundry/app/controller"
	"github.com/boazcstrike/silayan-laundry/app/router"
	"github.com/boazcstrike/silayan-laundry/config"
	"github.com/boazcstrike/silayan-laundry/db"
	"github.com/boazcstrike/silayan-laundry/models"
	"github.com/boazcstrike/silayan-laundry/repository"
	"github.com/boazcstrike/silayan-laundry/service"
)

// App owns the wired application and its teardown
type App struct {
	Config *config.Config
	repo   repository.SubmissionRepositoryInterface
}

// Initialize wires the application: config, log store, services,
// controllers and routes
func Initialize() (*App, error) {
	cfg := config.Load()

	// Pre-flight the configuration; hard errors stop startup, the rest
	// are surfaced as warnings
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			log.Printf("⚠️  Config: %s", msg)
		}
		return nil, fmt.Errorf("configuration is invalid: %s", errs[0])
	}

	// Submission log store, selected by explicit config flag
	if cfg.LogStore == "postgres" {
		if err := db.InitDB(); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	repo, err := repository.NewSubmissionRepository(cfg.LogStore, db.DB)
	if err != nil {
		return nil, err
	}
	if pg, ok := repo.(*repository.PostgresSubmissionRepository); ok {
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
	}
	log.Printf("✓ Submission log store ready (%s)", cfg.LogStore)

	// Image compositor
	compositor, err := service.NewImageCompositor(service.CompositorConfig{
		TemplatePath:  cfg.TemplatePath,
		SignaturePath: cfg.SignaturePath,
		FontSize:      cfg.FontSize,
		FontFamily:    cfg.FontFamily,
	})
	if err != nil {
		return nil, err
	}

	// Discord webhook delivery. A missing URL only disables the channel;
	// the error surfaces when a send is attempted.
	uploader := service.NewUploadClient(service.UploadClientConfig{
		WebhookURL: cfg.WebhookURL,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.UploadTimeout,
	}, &http.Client{})
	if errs := uploader.ValidateConfig(); len(errs) > 0 {
		log.Printf("⚠️  Discord delivery disabled: %s", errs[0])
	}

	// Google Drive archive delivery, optional
	var driveService service.DriveServiceInterface
	if cfg.DriveCredentialsPath != "" {
		ds, err := service.NewDriveService(context.Background(), cfg.DriveCredentialsPath, cfg.DriveFolderID)
		if err != nil {
			log.Printf("⚠️  Drive delivery disabled: %v", err)
		} else {
			driveService = ds
			log.Printf("✓ Drive archive channel ready")
		}
	}

	catalog := models.DefaultCatalog()
	sessions := service.NewSessionManager(catalog)
	tally := service.NewTallyService(compositor, uploader, driveService, repo, catalog)
	report := service.NewReportService(repo, cfg.BaseURL)

	controllers := &router.Controllers{
		Count:      controller.NewCountController(sessions, catalog),
		Action:     controller.NewActionController(sessions, tally),
		Submission: controller.NewSubmissionController(repo),
		Report:     controller.NewReportController(report),
	}

	router.SetupRoutes(controllers)

	return &App{Config: cfg, repo: repo}, nil
}

// Shutdown releases the log store and database resources
func (a *App) Shutdown() {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			log.Printf("⚠️  Failed to close submission log store: %v", err)
		}
	}
	if err := db.CloseDB(); err != nil {
		log.Printf("⚠️  Failed to close database: %v", err)
	}
}
