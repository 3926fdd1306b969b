package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasklogger/internal/config"
	"tasklogger/internal/logging"
)

// errReported the failure was already rendered to the user
var errReported = errors.New("failed")

// globalFlags flags shared by every command
type globalFlags struct {
	configPath    string
	logLevel      string
	backend       string
	workbook      string
	spreadsheetID string
	credentials   string
	dataDir       string
	noHistory     bool
	dev           bool
}

// app CLI state built in PersistentPreRunE
type app struct {
	fs      afero.Fs
	flags   globalFlags
	cfg     *config.AppConfig
	info    config.LoadConfigInfo
	baseDir string
	log     *zap.Logger
}

func newApp(fs afero.Fs) *app {
	return &app{fs: fs}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasklogger",
		Short: "Log daily work updates into per-employee spreadsheet tabs",
		Long: `tasklogger turns daily updates like

  Update for Kevin: worked on Daily Task Logger project from home, 2 hours worked, no blockers

into one row on the spreadsheet tab named after the employee.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default: config.toml next to the executable)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.backend, "backend", "", "sheets backend: google, workbook or memory")
	pf.StringVar(&a.flags.workbook, "workbook", "", "local .xlsx workbook (implies --backend workbook)")
	pf.StringVar(&a.flags.spreadsheetID, "spreadsheet-id", "", "Google spreadsheet id")
	pf.StringVar(&a.flags.credentials, "credentials", "", "service account credentials file")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (history database)")
	pf.BoolVar(&a.flags.noHistory, "no-history", false, "do not record updates in the history database")
	pf.BoolVar(&a.flags.dev, "dev", false, "development mode (console logs, gin debug)")

	cmd.AddCommand(a.serveCmd())
	cmd.AddCommand(a.logCmd())
	cmd.AddCommand(a.appendCmd())
	cmd.AddCommand(a.sheetsCmd())
	cmd.AddCommand(a.historyCmd())
	cmd.AddCommand(a.agentCmd())
	return cmd
}

// load reads the config file and applies flag overrides.
// Priority: flags > environment > config.toml > defaults
func (a *app) load() error {
	path := a.flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, info, err := config.LoadConfigWithInfo(a.fs, path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	a.cfg, a.info = cfg, info
	a.baseDir = filepath.Dir(path)

	f := a.flags
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.workbook != "" {
		cfg.Sheets.WorkbookPath = f.workbook
		cfg.Sheets.Backend = config.BackendWorkbook
	}
	if f.backend != "" {
		cfg.Sheets.Backend = f.backend
	}
	if f.spreadsheetID != "" {
		cfg.Sheets.SpreadsheetID = f.spreadsheetID
	}
	if f.credentials != "" {
		cfg.Sheets.CredentialsFile = f.credentials
	}
	if f.dataDir != "" {
		cfg.Data.DataDir = f.dataDir
	}
	if f.noHistory {
		cfg.Data.History = false
	}
	if f.dev {
		cfg.Server.DevMode = true
	}

	if a.log == nil {
		log, err := logging.New(cfg.Log.Level, cfg.Server.DevMode)
		if err != nil {
			return err
		}
		a.log = log
	}
	a.log.Debug("config loaded",
		zap.String("path", info.Path),
		zap.Bool("found", info.Found),
		zap.String("backend", cfg.Sheets.Backend))
	return nil
}
