package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/procurement_backend/auditor"
	"github.com/mmdatafocus/procurement_backend/config"
	"github.com/mmdatafocus/procurement_backend/middlewares"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/sirupsen/logrus"
)

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func corsConfig(settings config.Settings) cors.Config {
	cfg := cors.DefaultConfig()
	// In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// In non-production, allow all.
	if settings.IsProduction() {
		cfg.AllowOrigins = utils.SplitAndTrim(settings.CorsAllowedOrigins)
		if len(cfg.AllowOrigins) == 0 {
			// deny all if not configured; cors.New rejects an empty allowlist
			cfg.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	cfg.AddAllowHeaders("Origin", "Content-Type", middlewares.RoleHeader, utils.CorrelationIdHeader)
	cfg.AddExposeHeaders("Content-Length", utils.CorrelationIdHeader)
	return cfg
}

// newRouter wires every route on top of store.
func newRouter(settings config.Settings, store *models.Store, aud *auditor.Auditor, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.Use(cors.New(corsConfig(settings)))
	r.Use(middlewares.SessionMiddleware(store))
	r.Use(middlewares.LoaderMiddleware(store))
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	h := &handler{store: store, auditor: aud, logger: logger}
	api := r.Group("/api")
	{
		api.GET("/session/role", h.getRole)
		api.PUT("/session/role", h.setRole)

		api.GET("/dashboard", h.dashboard)
		api.GET("/inventory", h.inventory)
		api.GET("/suppliers", h.listSuppliers)
		api.POST("/suppliers", h.addSupplier)
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id", h.getOrder)
		api.GET("/journals", h.listJournals)
		api.GET("/queues/:role", h.queue)

		api.POST("/production/requests", h.requestPurchase)
		api.POST("/purchasing/orders", h.createOrder)
		api.POST("/purchasing/orders/:id/submit", h.transition(models.OrderStatusSubmitted, models.NoteSubmitted))
		api.POST("/accounting/orders/:id/approve", h.transition(models.OrderStatusApproved, models.NoteApproved))
		api.POST("/accounting/orders/:id/reject", h.transition(models.OrderStatusRejected, models.NoteRejected))
		api.POST("/supplier/orders/:id/ship", h.transition(models.OrderStatusShipped, models.NoteShipped))
		api.POST("/supplier/orders/:id/invoice", h.transition(models.OrderStatusInvoiced, models.NoteInvoiced))
		api.POST("/warehouse/orders/:id/receive", h.receiveGoods)
		api.POST("/finance/orders/:id/pay", h.payInvoice)

		api.GET("/accounting/report", h.accountingReport)
		api.POST("/audit", h.audit)
		api.POST("/reset", h.reset)
	}
	r.NoRoute(customNotFoundHandler)
	return r
}

func newAuditor(ctx context.Context, settings config.Settings, logger *logrus.Logger) *auditor.Auditor {
	opts := []auditor.Option{auditor.WithTimeout(settings.AuditorTimeout)}
	gen, err := auditor.NewGenAIGenerator(ctx, settings.AuditorKey(), settings.AuditorModel)
	if err != nil {
		// The service still runs; audits answer with the fallback text.
		logger.WithFields(logrus.Fields{"field": "auditor"}).Warn(err.Error())
		return auditor.New(nil, logger, opts...)
	}
	logger.WithFields(logrus.Fields{"generator": gen.Name()}).Info("auditor configured")
	return auditor.New(gen, logger, opts...)
}

func main() {
	logger := config.GetLogger()

	settings, err := config.LoadSettings()
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "config"}).Fatal(err.Error())
	}
	config.SetLogLevel(settings.LogLevel)
	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog := models.DefaultCatalog()
	if settings.CatalogPath != "" {
		catalog, err = models.LoadCatalog(settings.CatalogPath)
		if err != nil {
			logger.WithFields(logrus.Fields{"field": "catalog", "path": settings.CatalogPath}).Fatal(err.Error())
		}
	}
	store := models.NewStore(catalog, models.WithPhoneRegion(settings.PhoneRegion))

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	aud := newAuditor(sigCtx, settings, logger)
	r := newRouter(settings, store, aud, logger)

	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"info":  "Server started",
		"items": len(catalog.Items),
	}).Info("listening on http://localhost:", settings.Port)
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			role, _ := utils.GetRoleFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"correlation_id": cid,
				"role":           role,
				"path":           c.FullPath(),
			}).Error(c.Errors.String())
		}
	}
}
