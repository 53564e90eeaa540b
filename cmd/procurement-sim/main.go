package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmdatafocus/procurement_backend/auditor"
	"github.com/mmdatafocus/procurement_backend/config"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	catalogPath string
	logLevel    string
}

type scenarioFlags struct {
	supplierId string
	mismatch   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "procurement-sim",
		Short:         "Drive the procurement workflow in-process",
		Long:          "procurement-sim runs the SOPB workflow against an in-memory store, without the HTTP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.SetLogLevel(flags.logLevel)
			// keep stdout for command output
			config.GetLogger().SetOutput(cmd.ErrOrStderr())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.catalogPath, "catalog", "", "Path to a catalog YAML file (defaults to the embedded catalog)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level")

	var sf scenarioFlags
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run one order through every department and print the final state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			res, err := runScenario(cmd.Context(), store, config.GetLogger(), sf.supplierId, sf.mismatch)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	scenarioCmd.Flags().StringVar(&sf.supplierId, "supplier", "SUP01", "Supplier the request is converted for")
	scenarioCmd.Flags().BoolVar(&sf.mismatch, "mismatch", false, "Short-deliver the first line so the receipt is rejected")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the seed inventory and suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := models.LoadCatalog(flags.catalogPath)
			if err != nil {
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), catalog)
		},
	}

	var af scenarioFlags
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Run the scenario, then ask the auditor for a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd.Context(), cmd.OutOrStdout(), flags, af)
		},
	}
	auditCmd.Flags().StringVar(&af.supplierId, "supplier", "SUP01", "Supplier the request is converted for")
	auditCmd.Flags().BoolVar(&af.mismatch, "mismatch", false, "Short-deliver the first line so the receipt is rejected")

	root.AddCommand(scenarioCmd, catalogCmd, auditCmd)
	return root
}

func openStore(flags rootFlags) (*models.Store, error) {
	catalog, err := models.LoadCatalog(flags.catalogPath)
	if err != nil {
		return nil, err
	}
	return models.NewStore(catalog), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func writeCatalog(w io.Writer, catalog models.Catalog) error {
	items := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "NAME", "PRICE", "STOCK", "SAFETY", "UNIT", "LOW")
	for _, it := range catalog.Items {
		low := ""
		if it.IsLowStock() {
			low = "yes"
		}
		items.Row(it.ID, it.Name, utils.FormatRupiah(it.Price), strconv.Itoa(it.Stock), strconv.Itoa(it.SafetyStock), it.Unit, low)
	}

	suppliers := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "ADDRESS", "PHONE")
	for _, s := range catalog.Suppliers {
		suppliers.Row(s.ID, s.Name, s.Address, s.Phone)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", items.Render(), suppliers.Render())
	return err
}

var errAuditorDisabled = errors.New("auditor is disabled (AUDITOR_ENABLED)")

func runAudit(ctx context.Context, w io.Writer, flags rootFlags, sf scenarioFlags) error {
	if !config.AuditorEnabled() {
		return errAuditorDisabled
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	logger := config.GetLogger()

	store, err := openStore(flags)
	if err != nil {
		return err
	}
	if _, err := runScenario(ctx, store, logger, sf.supplierId, sf.mismatch); err != nil {
		return err
	}

	gen, err := auditor.NewGenAIGenerator(ctx, settings.AuditorKey(), settings.AuditorModel)
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "auditor"}).Warn(err.Error())
	}
	var a *auditor.Auditor
	if gen != nil {
		a = auditor.New(gen, logger, auditor.WithTimeout(settings.AuditorTimeout))
	} else {
		a = auditor.New(nil, logger)
	}
	snap := store.Snapshot()
	res := a.Audit(ctx, snap.Orders, snap.Journals)
	if !res.OK {
		_, err := fmt.Fprintln(w, res.Analysis)
		return err
	}
	return renderMarkdown(w, res.Analysis)
}

func renderMarkdown(w io.Writer, md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
