package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"fynix/internal/domain"
	"fynix/internal/handler"
	"fynix/internal/middleware"
	"fynix/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Billing *handler.BillingHandler
	Invoice *handler.InvoiceHandler
	Preset  *handler.PresetHandler
	KPI     *handler.KPIHandler
	Report  *handler.ReportHandler
	Health  *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(log *zap.Logger, allowedOrigins []string, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()
	handler.SetErrorLogger(log)

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(allowedOrigins))
	r.Use(middleware.Logger(log))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc, log))

	write := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleMember)
	approve := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	billing := v1.Group("/billing")
	billing.GET("/unbilled", h.Billing.ListUnbilled)
	billing.POST("/drafts", write, h.Billing.CreateDraft)

	invoices := v1.Group("/invoices")
	invoices.GET("", h.Invoice.List)
	invoices.POST("", write, h.Invoice.Create)
	invoices.GET("/export.csv", h.Report.ExportCSV)
	invoices.GET("/export.xlsx", h.Report.ExportXLSX)
	invoices.POST("/pay", approve, h.Invoice.BulkMarkPaid)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id", write, h.Invoice.Update)
	invoices.GET("/:id/pages", h.Invoice.Pages)
	invoices.POST("/:id/finalize", write, h.Invoice.Finalize)
	invoices.POST("/:id/send", write, h.Invoice.Send)
	invoices.POST("/:id/pay", approve, h.Invoice.MarkPaid)
	invoices.POST("/:id/export", h.Invoice.Export)
	invoices.POST("/:id/presets/:presetId", write, h.Invoice.ApplyPreset)

	presets := v1.Group("/presets")
	presets.GET("", h.Preset.List)
	presets.POST("", write, h.Preset.Add)
	presets.DELETE("/:id", approve, h.Preset.Delete)

	kpis := v1.Group("/kpis")
	kpis.GET("", h.KPI.Summary)
	kpis.GET("/periods", h.KPI.Periods)
	kpis.GET("/report", h.Report.KPIReport)
	v1.GET("/clients", h.KPI.Clients)

	return r
}
