// Package scheduler runs the daily stock scan on a gocron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/orcana-hub/backoffice/internal/storage"
)

// AdminNotifier delivers an already-rendered message to every administrator.
// Implemented by notification.Mailer.
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, eventName, subject, body string) error
}

// Subjects of the two scan outcome messages.
const (
	scanOKSubject  = "Estoque OK"
	scanLowSubject = "Estoque Baixo"
)

// StockScanJob walks the inventory for materials below their configured
// minimum and reports the result to all administrators. Every failure is
// logged and swallowed so one bad run never aborts the schedule.
type StockScanJob struct {
	inventory storage.InventoryStore
	notifier  AdminNotifier
	logger    *slog.Logger
}

// NewStockScanJob creates a StockScanJob.
func NewStockScanJob(inventory storage.InventoryStore, notifier AdminNotifier, logger *slog.Logger) *StockScanJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockScanJob{inventory: inventory, notifier: notifier, logger: logger}
}

// Run executes one scan cycle. It never returns an error and never panics
// out to the scheduler.
func (j *StockScanJob) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("stock scan panicked", "panic", r)
			scansTotal.WithLabelValues("panic").Inc()
		}
	}()

	j.logger.Info("starting stock scan")

	materials, err := j.inventory.ListBelowMinimum(ctx)
	if err != nil {
		j.logger.Error("stock scan failed to query inventory", "error", err)
		scansTotal.WithLabelValues("error").Inc()
		return
	}

	subject, body := buildScanReport(materials)
	if len(materials) == 0 {
		j.logger.Info("all materials above minimum levels")
	} else {
		for _, m := range materials {
			j.logger.Warn("material below minimum",
				"name", m.Name, "quantity", m.Quantity, "unit", m.Unit, "minimum", *m.MinAlert)
		}
	}

	if err := j.notifier.NotifyAdmins(ctx, "inventory.scan", subject, body); err != nil {
		j.logger.Error("stock scan failed to notify admins", "error", err)
		scansTotal.WithLabelValues("error").Inc()
		return
	}

	scansTotal.WithLabelValues("ok").Inc()
	j.logger.Info("stock scan finished", "below_minimum", len(materials))
}

// buildScanReport renders the scan outcome message: a single OK line when
// nothing is below minimum, otherwise one line per under-threshold item.
func buildScanReport(materials []*storage.Material) (subject, body string) {
	if len(materials) == 0 {
		return scanOKSubject,
			"Todos os materiais estão com o estoque acima do nível mínimo de aviso."
	}

	var b strings.Builder
	b.WriteString("Os seguintes itens estão com o estoque abaixo do nível mínimo de aviso:\n\n")
	for _, m := range materials {
		min := ""
		if m.MinAlert != nil {
			min = formatQty(*m.MinAlert)
		}
		fmt.Fprintf(&b, "- %s: %s %s (Mínimo: %s)\n", m.Name, formatQty(m.Quantity), m.Unit, min)
	}
	return scanLowSubject, b.String()
}

// formatQty renders a quantity without trailing zeros ("4", not "4.00").
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
