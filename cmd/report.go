package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/payroll-report/internal/export"
	"github.com/frahmantamala/payroll-report/internal/payroll"
	"github.com/frahmantamala/payroll-report/internal/report"
	"github.com/frahmantamala/payroll-report/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	reportOutput string
	reportFormat string
	reportQuiet  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute salaries and write the export file",
	Long:  `Load employee records, compute monthly salaries and statistics, print the summary and write the export file.`,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log := logger.LoggerWrapper()

	loader, closeLoader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	defer closeLoader()

	svc := payroll.NewService(loader, nil, cfg.Payroll.NegativeValues, log)

	ctx := context.Background()
	res, err := svc.Report(ctx)
	if err != nil {
		return err
	}

	if !reportQuiet {
		if err := report.WriteSummary(cmd.OutOrStdout(), res.Report); err != nil {
			return err
		}
	}

	format := getStringFlag(reportFormat, cfg.Export.Format)
	exp, err := export.ForFormat(format)
	if err != nil {
		return err
	}

	output := getStringFlag(reportOutput, withExtension(cfg.Export.Path, exp.Extension()))
	if err := export.WriteFile(exp, res.Report, output); err != nil {
		log.Error("export failed", "path", output, "error", err, "run_id", res.RunID)
		return err
	}

	log.Info("export written",
		"path", output,
		"format", format,
		"employees", res.Report.EmployeeCount,
		"run_id", res.RunID)
	return nil
}

func withExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "export file path (overrides config)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "export format: csv or xlsx (overrides config)")
	reportCmd.Flags().BoolVarP(&reportQuiet, "quiet", "q", false, "do not print the salary summary")
}
