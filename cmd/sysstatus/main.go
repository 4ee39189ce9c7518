package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alplog/sysstatus/internal/collect"
	"github.com/alplog/sysstatus/internal/config"
	"github.com/alplog/sysstatus/internal/mailer"
	"github.com/alplog/sysstatus/internal/report"
	"github.com/alplog/sysstatus/internal/store"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sysstatus [mail]",
	Short: "sysstatus - one-shot host status report collector",
	Long: `sysstatus gathers point-in-time OS and storage-health facts into a
single timestamped text report in the log directory, records it in a
local report index, and optionally emails it to the operator.

Pass the literal argument "mail" (or --mail) to email the report.
Run without a subcommand to generate a report (equivalent to 'report').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var reportCmd = &cobra.Command{
	Use:   "report [mail]",
	Short: "Generate one status report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sysstatus %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed reports, most recent first",
	RunE:  runList,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge index entries older than the specified number of days",
	Long: `Purge removes rows from the report index. The report files themselves
are never deleted; file retention is an external concern.`,
	RunE: runPurge,
}

var (
	purgeDays int
	listHost  string
	listLimit int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/sysstatus.yaml)")
	rootCmd.PersistentFlags().String("log-dir", "", "report output directory (default /var/log/system_status)")
	rootCmd.PersistentFlags().Bool("mail", false, "email the report to the configured recipient")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "purge index entries older than this many days")
	listCmd.Flags().StringVar(&listHost, "host", "", "only list reports for this hostname")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum number of reports to list")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(purgeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// wantsMail resolves the legacy positional "mail" argument and the
// --mail flag into one decision.
func wantsMail(args []string, mailFlag bool) (bool, error) {
	if len(args) == 0 {
		return mailFlag, nil
	}
	if args[0] != "mail" {
		return false, fmt.Errorf("unknown argument %q (expected \"mail\")", args[0])
	}
	return true, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if v, _ := cmd.Flags().GetString("log-dir"); v != "" {
		cfg.LogDir = v
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mailFlag, _ := cmd.Flags().GetBool("mail")
	sendMail, err := wantsMail(args, mailFlag)
	if err != nil {
		return err
	}

	// Abort cleanly on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := collect.New(cfg, log).Run(ctx, sendMail)
	if err != nil {
		return err
	}

	path, err := report.Write(cfg.LogDir, rep)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", path).Msg("report written")

	indexReport(ctx, log, cfg, rep, path, sendMail)

	if sendMail {
		if err := mailer.Send(ctx, cfg.Mail, cfg.Hostname, rep.Render()); err != nil {
			// The report file is already persisted, so a failed send
			// degrades the run instead of failing it.
			log.Warn().Err(err).Msg("mail delivery failed")
		} else {
			log.Info().Str("to", cfg.Mail.To).Msg("report mailed")
		}
	}

	return nil
}

// indexReport records the report in the SQLite index. Index trouble is
// never fatal: the file is the primary artifact.
func indexReport(ctx context.Context, log zerolog.Logger, cfg *config.Config, rep *report.Report, path string, mailed bool) {
	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Warn().Err(err).Msg("report index unavailable")
		return
	}
	defer db.Close()

	var size int64
	if fi, err := os.Stat(path); err == nil {
		size = fi.Size()
	}

	rec := &store.ReportRecord{
		ReportID:    rep.ID,
		Hostname:    rep.Facts.Hostname,
		GeneratedAt: rep.GeneratedAt,
		Path:        path,
		Mailed:      mailed,
		SizeBytes:   size,
		Sections:    len(rep.Sections),
	}
	if _, err := db.Insert(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("report index insert failed")
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open report index: %w", err)
	}
	defer db.Close()

	records, err := db.List(context.Background(), store.ListFilter{
		Hostname: listHost,
		Limit:    listLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "GENERATED\tHOSTNAME\tMAILED\tSIZE\tPATH")
	for _, rec := range records {
		mailed := "no"
		if rec.Mailed {
			mailed = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			rec.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Hostname, mailed, rec.SizeBytes, rec.Path)
	}
	return w.Flush()
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open report index: %w", err)
	}
	defer db.Close()

	n, err := db.Purge(context.Background(), time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Printf("Purged %d index entries older than %d days\n", n, purgeDays)
	return nil
}
