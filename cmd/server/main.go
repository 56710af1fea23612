// @title           Fynix Billing API
// @version         1.0
// @description     Invoicing, billing lifecycle and finance KPIs.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "fynix/docs"
	"fynix/internal/config"
	"fynix/internal/email/noop"
	"fynix/internal/email/ses"
	"fynix/internal/handler"
	"fynix/internal/logger"
	"fynix/internal/port"
	"fynix/internal/render/pdf"
	"fynix/internal/repository/memory"
	"fynix/internal/repository/postgres"
	"fynix/internal/router"
	"fynix/internal/service"
	s3storage "fynix/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type repositories struct {
	workItems port.WorkItemRepository
	invoices  port.InvoiceRepository
	profiles  port.ProfileRepository
	presets   port.PresetRepository
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories
	var db *sqlx.DB
	var repos repositories
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			workItems: memory.NewWorkItemRepo(store),
			invoices:  memory.NewInvoiceRepo(store),
			profiles:  memory.NewProfileRepo(store),
			presets:   memory.NewPresetRepo(store),
		}
		zl.Warn("using in-memory storage; data is lost on restart")
	default:
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		repos = repositories{
			workItems: postgres.NewWorkItemRepo(db),
			invoices:  postgres.NewInvoiceRepo(db),
			profiles:  postgres.NewProfileRepo(db),
			presets:   postgres.NewPresetRepo(db),
		}
	}

	// Initialize document storage and mail
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var mailer port.InvoiceMailer
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		mailer = noop.NewNoopSender(cfg.Email.FrontendURL, zl)
	}

	rasterizer := pdf.NewRasterizer(cfg.Billing.BrandName)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	billingSvc := service.NewBillingService(repos.workItems, repos.invoices, repos.profiles, cfg.Billing, zl)
	invoiceSvc := service.NewInvoiceService(repos.invoices, repos.workItems, repos.profiles, rasterizer, s3Client, mailer, nil, cfg.Billing, cfg.S3, zl)
	presetSvc := service.NewPresetService(repos.presets, repos.invoices, zl)
	kpiSvc := service.NewKPIService(repos.invoices, repos.workItems, cfg.Billing, zl)
	reportSvc := service.NewReportService(repos.invoices, kpiSvc, rasterizer, s3Client, cfg.Billing, cfg.S3, zl)

	// Setup router
	r := router.Setup(zl, cfg.CORS.AllowedOrigins, authSvc, router.Handlers{
		Billing: handler.NewBillingHandler(billingSvc),
		Invoice: handler.NewInvoiceHandler(invoiceSvc, billingSvc, presetSvc),
		Preset:  handler.NewPresetHandler(presetSvc),
		KPI:     handler.NewKPIHandler(kpiSvc),
		Report:  handler.NewReportHandler(reportSvc),
		Health:  handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
