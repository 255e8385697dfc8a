package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/hylla/assetdex/internal/adapters/server"
	"github.com/hylla/assetdex/internal/adapters/server/common"
	"github.com/hylla/assetdex/internal/adapters/storage/sqlite"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/config"
	"github.com/hylla/assetdex/internal/platform"
	"github.com/hylla/assetdex/internal/tui"
	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

// program is the subset of tea.Program the tui command drives.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the interactive program; tests replace it.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(ctx, root, fang.WithVersion(version)); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the command tree with explicit args and writers.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}

// rootOptions holds persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	dbPath     string
	appName    string
	devMode    bool

	stdout io.Writer
	stderr io.Writer
}

// newRootCommand builds the assetdex command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("ASSETDEX_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.AppName
	if envApp := strings.TrimSpace(os.Getenv("ASSETDEX_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}

	root := &cobra.Command{
		Use:   "assetdex",
		Short: "Browse an organization's asset index in the terminal",
		Long: "assetdex renders an organization's advanced asset index: one row per asset,\n" +
			"one cell per visible column, formatted for the viewer's locale, time zone, and roles.",
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, tuiFlags{})
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.dbPath, "db", "", "path to sqlite database")
	flags.StringVar(&opts.appName, "app", defaultApp, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newTUICommand(opts),
		newIndexCommand(opts),
		newColumnsCommand(opts),
		newSeedCommand(opts),
		newServeCommand(opts),
		newPathsCommand(opts),
		newInitConfigCommand(opts),
	)
	return root
}

// tuiFlags holds flags for the interactive index.
type tuiFlags struct {
	org     string
	columns []string
}

func newTUICommand(opts *rootOptions) *cobra.Command {
	var flags tuiFlags
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive asset index",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, flags)
		},
	}
	cmd.Flags().StringVar(&flags.org, "org", "", "organization id (defaults to config, then the first organization)")
	cmd.Flags().StringSliceVar(&flags.columns, "columns", nil, "column keys to show, e.g. name,status,cf_Serial")
	return cmd
}

// runTUI opens the interactive index.
func runTUI(opts *rootOptions, flags tuiFlags) error {
	rt, err := openRuntime(opts, "tui")
	if err != nil {
		return err
	}
	defer rt.Close()
	// Runtime logs stay in the dev-file sink while the index is on screen.
	rt.logger.SetConsoleEnabled(false)

	columns, err := app.ParseColumns(flags.columns)
	if err != nil {
		return err
	}
	m := tui.NewModel(rt.svc, tui.WithRequest(app.IndexRequest{
		OrganizationID: flags.org,
		Columns:        columns,
	}))
	rt.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		rt.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}

// indexFlags holds flags for the static index render.
type indexFlags struct {
	org        string
	columns    []string
	roles      []string
	locale     string
	timeZone   string
	mode       string
	ref        string
	showImage  bool
	freeze     bool
	width      int
	jsonOutput bool
}

func newIndexCommand(opts *rootOptions) *cobra.Command {
	var flags indexFlags
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Render the asset index once and print it",
		Long: `Render the asset index once and print it as a table or JSON.

Examples:
  assetdex index
  assetdex index --columns name,status,valuation,cf_Serial
  assetdex index --roles BASE --locale de-DE --tz Europe/Berlin
  assetdex index --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts, "index")
			if err != nil {
				return err
			}
			defer rt.Close()

			req := common.IndexRequest{
				OrganizationID: flags.org,
				Columns:        flags.columns,
				Roles:          flags.roles,
				Locale:         flags.locale,
				TimeZone:       flags.timeZone,
				Mode:           flags.mode,
				TrackingRef:    flags.ref,
			}
			if cmd.Flags().Changed("show-image") {
				req.ShowImage = &flags.showImage
			}
			if cmd.Flags().Changed("freeze-column") {
				req.FreezeColumn = &flags.freeze
			}
			page, err := common.NewAppServiceAdapter(rt.svc).RenderIndex(cmd.Context(), req)
			if err != nil {
				rt.logger.Error("command flow failed", "command", "index", "err", err)
				return fmt.Errorf("render index: %w", err)
			}
			rt.logger.Debug("index rendered", "org", page.Organization.ID, "rows", len(page.Rows), "columns", len(page.Columns))

			if flags.jsonOutput {
				encoded, err := json.MarshalIndent(page, "", "  ")
				if err != nil {
					return fmt.Errorf("encode index json: %w", err)
				}
				_, err = fmt.Fprintln(opts.stdout, string(encoded))
				return err
			}
			_, err = fmt.Fprintln(opts.stdout, tui.RenderTable(page, flags.width))
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.org, "org", "", "organization id")
	f.StringSliceVar(&flags.columns, "columns", nil, "column keys to show")
	f.StringSliceVar(&flags.roles, "roles", nil, "viewer roles (OWNER, ADMIN, BASE, SELF_SERVICE)")
	f.StringVar(&flags.locale, "locale", "", "BCP 47 locale for numbers and dates")
	f.StringVar(&flags.timeZone, "tz", "", "IANA time zone for dates")
	f.StringVar(&flags.mode, "mode", "", "index mode (simple, advanced)")
	f.StringVar(&flags.ref, "ref", "", "tracking ref appended to external links")
	f.BoolVar(&flags.showImage, "show-image", false, "show asset thumbnails in the title column")
	f.BoolVar(&flags.freeze, "freeze-column", true, "freeze the title column")
	f.IntVar(&flags.width, "width", 0, "maximum table width; 0 disables the limit")
	f.BoolVar(&flags.jsonOutput, "json", false, "print the rendered page as JSON")
	return cmd
}

func newColumnsCommand(opts *rootOptions) *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the columns available to the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts, "columns")
			if err != nil {
				return err
			}
			defer rt.Close()

			headers, err := common.NewAppServiceAdapter(rt.svc).ListColumns(cmd.Context(), org)
			if err != nil {
				return fmt.Errorf("list columns: %w", err)
			}
			tw := tabwriter.NewWriter(opts.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "KEY\tLABEL\tTYPE")
			for _, h := range headers {
				kind := "fixed"
				if h.CustomField {
					kind = h.FieldType
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Key, h.Label, kind)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization id")
	return cmd
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo organization with sample assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts, "seed")
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.svc.SeedDemo(cmd.Context(), rt.cfg.Organization.Currency)
			if err != nil {
				rt.logger.Error("command flow failed", "command", "seed", "err", err)
				return fmt.Errorf("seed demo data: %w", err)
			}
			if !result.Created {
				_, err = fmt.Fprintf(opts.stdout, "organization %q already exists (%s)\n", result.Organization.Name, result.Organization.ID)
				return err
			}
			_, err = fmt.Fprintf(opts.stdout, "seeded %q (%s) with %d assets\n", result.Organization.Name, result.Organization.ID, result.Assets)
			return err
		},
	}
}

// serveFlags holds HTTP listener overrides.
type serveFlags struct {
	bind        string
	apiEndpoint string
	mcpEndpoint string
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the index over HTTP JSON and MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(opts, "serve")
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg := server.Config{
				HTTPBind:      firstNonEmpty(flags.bind, rt.cfg.Server.Bind),
				APIEndpoint:   firstNonEmpty(flags.apiEndpoint, rt.cfg.Server.APIEndpoint),
				MCPEndpoint:   firstNonEmpty(flags.mcpEndpoint, rt.cfg.Server.MCPEndpoint),
				ServerName:    platform.AppName,
				ServerVersion: version,
			}
			deps := server.Dependencies{
				Index:  common.NewAppServiceAdapter(rt.svc),
				Logger: rt.logger,
			}
			if err := server.Run(cmd.Context(), cfg, deps); err != nil {
				rt.logger.Error("command flow failed", "command", "serve", "err", err)
				return fmt.Errorf("run server: %w", err)
			}
			rt.logger.Info("command flow complete", "command", "serve")
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.bind, "bind", "", "listen address (defaults to server.bind)")
	cmd.Flags().StringVar(&flags.apiEndpoint, "api-endpoint", "", "JSON API mount path")
	cmd.Flags().StringVar(&flags.mcpEndpoint, "mcp-endpoint", "", "MCP mount path")
	return cmd
}

func newPathsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data, and log paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := opts.paths()
			if err != nil {
				return err
			}
			out := opts.stdout
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", opts.resolveConfigPath(paths))
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "db: %s\n", firstNonEmpty(opts.dbPath, paths.DBPath))
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

func newInitConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := opts.paths()
			if err != nil {
				return err
			}
			configPath := opts.resolveConfigPath(paths)
			wrote, err := config.WriteIfMissing(configPath, config.Default(firstNonEmpty(opts.dbPath, paths.DBPath)))
			if err != nil {
				return fmt.Errorf("write config %q: %w", configPath, err)
			}
			if !wrote {
				_, err = fmt.Fprintf(opts.stdout, "config already exists: %s\n", configPath)
				return err
			}
			_, err = fmt.Fprintf(opts.stdout, "wrote config: %s\n", configPath)
			return err
		},
	}
}

// paths resolves platform paths for the current flags.
func (o *rootOptions) paths() (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: o.appName,
		DevMode: o.devMode,
	})
}

// resolveConfigPath prefers --config over the resolved default.
func (o *rootOptions) resolveConfigPath(paths platform.Paths) string {
	return firstNonEmpty(o.configPath, paths.ConfigPath)
}

// appRuntime holds the opened state shared by data-backed commands.
type appRuntime struct {
	cfg    config.Config
	logger *runtimeLogger
	repo   *sqlite.Repository
	svc    *app.Service
}

// openRuntime loads config, configures logging, and opens the repository.
func openRuntime(opts *rootOptions, command string) (*appRuntime, error) {
	paths, err := opts.paths()
	if err != nil {
		return nil, err
	}
	configPath := opts.resolveConfigPath(paths)

	dbPath := strings.TrimSpace(opts.dbPath)
	dbOverridden := dbPath != "" || strings.TrimSpace(os.Getenv(platform.EnvDBPath)) != ""
	if dbPath == "" {
		dbPath = paths.DBPath
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newRuntimeLogger(opts.stderr, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", cfg.Database.Path)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	if err := config.EnsureConfigDir(cfg.Database.Path); err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		_ = logger.Close()
		return nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	logger.Info("sqlite repository ready", "db_path", cfg.Database.Path)

	svc := app.NewService(repo, uuid.NewString, nil, app.ServiceConfig{
		OrganizationID: cfg.Organization.ID,
		Locale:         cfg.Viewer.Locale,
		TimeZone:       cfg.Viewer.TimeZone,
		Roles:          cfg.Roles(),
		Preferences:    cfg.Preferences(),
		Columns:        cfg.Columns(),
		TrackingRef:    cfg.Links.TrackingRef,
		Logger:         logger,
	})
	return &appRuntime{cfg: cfg, logger: logger, repo: repo, svc: svc}, nil
}

// Close releases the repository and log sinks.
func (r *appRuntime) Close() {
	if r == nil {
		return
	}
	if err := r.repo.Close(); err != nil {
		r.logger.Warn("sqlite close failed", "err", err)
	}
	_ = r.logger.Close()
}

// parseBoolEnv parses a boolean env var; ok is false when unset or invalid.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
