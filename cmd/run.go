package cmd

import (
	"fmt"
	"io"

	"github.com/cucumber/godog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/features"
	"github.com/keisetsu/wed/internal/config"
	"github.com/keisetsu/wed/internal/db"
	"github.com/keisetsu/wed/internal/harness"
	"github.com/keisetsu/wed/internal/history"
	"github.com/keisetsu/wed/internal/steps"
	"github.com/keisetsu/wed/internal/ui"
)

// RunOptions are the settings of one `wed run`. Empty strings and nil
// pointers leave the config file value in place.
type RunOptions struct {
	ConfigPath string
	Server     string
	WebDriver  string
	Browser    string
	Headless   *bool

	Tags          string
	Format        string
	StopOnFailure bool
	NoHistory     bool
	Verbose       bool
	Paths         []string

	// Dial opens the WebDriver session; nil uses selenium.NewRemote.
	Dial harness.Dialer
}

func (o RunOptions) apply(cfg *config.Config) {
	if o.Server != "" {
		cfg.WedServer = o.Server
	}
	if o.WebDriver != "" {
		cfg.WebDriverURL = o.WebDriver
	}
	if o.Browser != "" {
		cfg.Browser = o.Browser
	}
	if o.Headless != nil {
		cfg.Headless = *o.Headless
	}
}

var runOpts RunOptions

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Run feature files against the wed editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOpts
		opts.ConfigPath = configFlag
		opts.Paths = args
		if cmd.Flags().Changed("headless") {
			headless, _ := cmd.Flags().GetBool("headless")
			opts.Headless = &headless
		}
		return RunSuite(cmd.OutOrStdout(), opts)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runOpts.Server, "server", "", "URL of the wed kitchen sink page")
	f.StringVar(&runOpts.WebDriver, "webdriver", "", "URL of the Selenium server")
	f.StringVar(&runOpts.Browser, "browser", "", "Browser to drive: chrome or firefox")
	f.Bool("headless", false, "Run the browser without a window")
	f.StringVarP(&runOpts.Tags, "tags", "t", "", "Only run scenarios matching the tag expression")
	f.StringVarP(&runOpts.Format, "format", "f", "pretty", "godog output format")
	f.BoolVar(&runOpts.StopOnFailure, "stop-on-failure", false, "Stop at the first failed scenario")
	f.BoolVar(&runOpts.NoHistory, "no-history", false, "Do not record the run in the history database")
	f.BoolVarP(&runOpts.Verbose, "verbose", "v", false, "Log the harness activity to stderr")
	rootCmd.AddCommand(runCmd)
}

func RunSuite(w io.Writer, opts RunOptions) error {
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig(opts.ConfigPath, log)
	if err != nil {
		return err
	}
	opts.apply(cfg)

	suite, err := harness.NewSuite(cfg, opts.Dial, log)
	if err != nil {
		return err
	}

	var recorder *history.Recorder
	var runID string
	if !opts.NoHistory {
		sqlDB, err := db.Open(cfg.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer sqlDB.Close()

		recorder = history.NewRecorder(sqlDB, log.Named("history"))
		if runID, err = recorder.Start(cfg.WedServer, cfg.Browser); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	var lib *steps.Library
	if recorder != nil {
		lib = steps.NewLibrary(suite, recorder)
	} else {
		lib = steps.NewLibrary(suite, nil)
	}

	options := &godog.Options{
		Format:        opts.Format,
		Tags:          opts.Tags,
		StopOnFailure: opts.StopOnFailure,
		Strict:        true,
		Concurrency:   1,
		Output:        w,
		Paths:         opts.Paths,
	}
	if len(opts.Paths) == 0 {
		options.FS = features.FS
		options.Paths = []string{"."}
	}

	log.Info("running features", zap.Strings("paths", options.Paths), zap.String("run", runID))
	code := godog.TestSuite{
		Name:                 "wed",
		TestSuiteInitializer: lib.InitializeTestSuite,
		ScenarioInitializer:  lib.InitializeScenario,
		Options:              options,
	}.Run()

	status := history.StatusPassed
	if code != 0 {
		status = history.StatusFailed
	}
	if recorder != nil {
		if err := recorder.Finish(status); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	ui.RunSummary(w, status, runID)
	if code != 0 {
		return fmt.Errorf("feature run failed (status %d)", code)
	}
	return nil
}
