package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/orcana-hub/backoffice/internal/api"
	"github.com/orcana-hub/backoffice/internal/config"
	"github.com/orcana-hub/backoffice/internal/logger"
	"github.com/orcana-hub/backoffice/internal/notification"
	"github.com/orcana-hub/backoffice/internal/scheduler"
	"github.com/orcana-hub/backoffice/internal/server"
	"github.com/orcana-hub/backoffice/internal/service"
	"github.com/orcana-hub/backoffice/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the back-office HTTP API server and the daily stock scan.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	log, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, fresh, err := storage.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if fresh {
		log.Info("created new database", "path", cfg.DBPath())
	}

	userStore := storage.NewSQLiteUserStore(db)
	quoteStore := storage.NewSQLiteQuoteStore(db)
	bookingStore := storage.NewSQLiteBookingStore(db)
	inventoryStore := storage.NewSQLiteInventoryStore(db)
	templateStore := storage.NewSQLiteTemplateStore(db)
	notifStore := storage.NewSQLiteNotificationStore(db)

	if err := seedTemplates(ctx, templateStore); err != nil {
		return fmt.Errorf("seeding e-mail templates: %w", err)
	}

	provider := notification.NewSMTPProvider(notification.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		FromAddr:   cfg.SMTPFrom,
		Encryption: cfg.SMTPEncryption,
	})

	mailer := notification.NewMailer(notification.MailerConfig{
		Provider:      provider,
		Templates:     notification.NewStoreSource(templateStore),
		Directory:     userStore,
		Store:         notifStore,
		OperatorEmail: cfg.OperatorEmail,
		StudioName:    cfg.StudioName,
		Location:      loc,
		Logger:        log,
	})

	quoteSvc := service.NewQuoteService(quoteStore, mailer, log)
	bookingSvc := service.NewBookingService(bookingStore, userStore, quoteStore, mailer, log)
	inventorySvc := service.NewInventoryService(inventoryStore, mailer, log)
	notifSvc := service.NewNotificationService(provider, notifStore, cfg.StudioName, log)
	dashboardSvc := service.NewDashboardService(bookingStore, quoteStore, inventoryStore, loc, log)

	scanJob := scheduler.NewStockScanJob(inventoryStore, mailer, log)
	sched, err := scheduler.New(scanJob, cfg.StockScanAt, loc, log)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Warn("scheduler shutdown failed", "error", err)
		}
	}()

	apiSrv := api.New(quoteSvc, bookingSvc, inventorySvc, notifSvc, dashboardSvc, templateStore, userStore, log)
	srv := server.New(apiSrv, cfg.Port, log)

	log.Info("back office started", "port", cfg.Port, "data_dir", cfg.DataDir)
	fmt.Fprintf(os.Stderr, "Back office running on http://localhost:%d\n", cfg.Port)

	return srv.Run(ctx)
}

// seedTemplates inserts the embedded default e-mail templates, leaving any
// operator-edited rows untouched.
func seedTemplates(ctx context.Context, store storage.TemplateStore) error {
	defaults, err := notification.DefaultTemplates()
	if err != nil {
		return err
	}
	rows := make([]storage.EmailTemplate, 0, len(defaults))
	for name, tpl := range defaults {
		rows = append(rows, storage.EmailTemplate{Name: name, Subject: tpl.Subject, Body: tpl.Body})
	}
	return store.Seed(ctx, rows)
}
