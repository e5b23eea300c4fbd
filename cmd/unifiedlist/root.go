package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"unifiedlist/internal/api"
	"unifiedlist/internal/auth"
	"unifiedlist/internal/config"
	"unifiedlist/internal/infra/logx"
	"unifiedlist/internal/ui"
)

type rootOptions struct {
	configPath string
	debug      bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "unifiedlist",
		Short: "Browse and edit a paginated REST resource in the terminal",
		Long: `unifiedlist binds a searchable, paginated table to one REST resource.
Records can be created, inspected, updated, deleted in bulk and exported
as a spreadsheet. The resource and its columns are described in a YAML
config file (see "unifiedlist init").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	pf.String("api-url", "", "resource endpoint, overrides api_url")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-file", "", "write JSON-lines logs to this file")
	pf.BoolVar(&opts.debug, "debug", false, "log at debug level (to debug.log unless --log-file is set)")
	pf.BoolVar(&opts.verbose, "verbose", false, "do not truncate long log values")

	cmd.AddCommand(newInitCmd(opts), newLoginCmd(opts), newLogoutCmd(opts))
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	return config.LoadWithFlags(o.configPath, cmd.Flags())
}

func tokenStore(cfg config.Config) *auth.FileStore {
	path := cfg.TokenFile
	if path == "" {
		path = config.DefaultTokenPath()
	}
	return auth.NewFileStore(path)
}

// setupLogging routes logx and the standard logger into the configured file.
// Without a file everything is discarded: the terminal belongs to the TUI.
func setupLogging(cfg config.Config, opts *rootOptions) (func(), error) {
	file := cfg.Log.File
	level := logx.ParseLevel(cfg.Log.Level)
	if opts.debug {
		level = logx.LevelDebug
		if file == "" {
			file = "debug.log"
		}
	}
	logx.SetMinLevel(level)
	logx.SetVerbose(opts.verbose)
	if file == "" {
		logx.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := logx.OpenFile(file)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logx.SetOutput(f)
	log.SetOutput(logx.StdlogWriter(logx.LevelDebug, f))
	return func() { _ = f.Close() }, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w (run \"unifiedlist init\" to create a config)", opts.configPath, err)
	}
	closeLog, err := setupLogging(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	store := tokenStore(cfg)
	client := api.NewFromConfig(cfg, store)
	logx.Infof("starting against %s", client.BaseURL())

	model := ui.New(cfg, client, store, ui.Options{
		Metrics: client.Metrics(),
		OnCount: []ui.CountListener{func(total int64) {
			logx.Debugf("count updated: %d", total)
		}},
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
