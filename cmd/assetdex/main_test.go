package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/config"
	"github.com/hylla/assetdex/internal/tui"
)

// TestMain sets deterministic environment defaults for CLI tests.
func TestMain(m *testing.M) {
	_ = os.Setenv("ASSETDEX_DEV_MODE", "false")
	_ = os.Unsetenv("ASSETDEX_CONFIG")
	_ = os.Unsetenv("ASSETDEX_DB_PATH")
	os.Exit(m.Run())
}

// fakeProgram stands in for the tea program.
type fakeProgram struct {
	model  tea.Model
	runErr error
}

// Run returns the configured model and error.
func (f fakeProgram) Run() (tea.Model, error) {
	return f.model, f.runErr
}

// tempRuntimeArgs returns --db/--config flags pointing into a temp dir.
func tempRuntimeArgs(t *testing.T) (string, []string) {
	t.Helper()
	tmp := t.TempDir()
	return tmp, []string{
		"--db", filepath.Join(tmp, "assetdex.db"),
		"--config", filepath.Join(tmp, "config.toml"),
	}
}

func TestRunVersion(t *testing.T) {
	var out strings.Builder
	if err := run(context.Background(), []string{"--version"}, &out, io.Discard); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.Contains(out.String(), "assetdex") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestRunUnknownCommandAndFlag(t *testing.T) {
	if err := run(context.Background(), []string{"bogus"}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected unknown command error")
	}
	if err := run(context.Background(), []string{"--definitely-not-a-flag"}, io.Discard, io.Discard); err == nil {
		t.Fatal("expected invalid flag error")
	}
}

func TestRunPathsCommand(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--app", "dexx", "--dev", "--db", "/tmp/custom.db", "paths"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(paths) error = %v", err)
	}
	output := out.String()
	for _, want := range []string{"app: dexx", "dev_mode: true", "db: /tmp/custom.db", "log_dir: ", "dexx-dev"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in paths output, got %q", want, output)
		}
	}
}

func TestRunSeedThenIndex(t *testing.T) {
	_, args := tempRuntimeArgs(t)

	var seedOut strings.Builder
	if err := run(context.Background(), append(append([]string{}, args...), "seed"), &seedOut, io.Discard); err != nil {
		t.Fatalf("run(seed) error = %v", err)
	}
	if !strings.Contains(seedOut.String(), "seeded \"Demo workshop\"") {
		t.Fatalf("unexpected seed output %q", seedOut.String())
	}

	var again strings.Builder
	if err := run(context.Background(), append(append([]string{}, args...), "seed"), &again, io.Discard); err != nil {
		t.Fatalf("run(seed again) error = %v", err)
	}
	if !strings.Contains(again.String(), "already exists") {
		t.Fatalf("expected idempotent seed, got %q", again.String())
	}

	var table strings.Builder
	if err := run(context.Background(), append(append([]string{}, args...), "index", "--columns", "name,status"), &table, io.Discard); err != nil {
		t.Fatalf("run(index) error = %v", err)
	}
	if !strings.Contains(table.String(), "Demo workshop") || !strings.Contains(table.String(), "Status") {
		t.Fatalf("unexpected index table %q", table.String())
	}

	var jsonOut bytes.Buffer
	indexArgs := append(append([]string{}, args...), "index", "--json", "--columns", "name,custody", "--roles", "BASE", "--locale", "de-DE")
	if err := run(context.Background(), indexArgs, &jsonOut, io.Discard); err != nil {
		t.Fatalf("run(index --json) error = %v", err)
	}
	var page app.IndexPage
	if err := json.Unmarshal(jsonOut.Bytes(), &page); err != nil {
		t.Fatalf("decode index json error = %v\n%s", err, jsonOut.String())
	}
	if page.Locale != "de-DE" || len(page.Rows) == 0 {
		t.Fatalf("unexpected page locale=%q rows=%d", page.Locale, len(page.Rows))
	}
	if len(page.Columns) != 2 || page.Columns[0].Key != "name" {
		t.Fatalf("unexpected columns %#v", page.Columns)
	}
	for _, row := range page.Rows {
		for _, c := range row.Cells {
			if c.Column == "custody" {
				t.Fatalf("expected BASE role to omit custody cells, got %#v", c)
			}
		}
	}

	var columnsOut strings.Builder
	if err := run(context.Background(), append(append([]string{}, args...), "columns"), &columnsOut, io.Discard); err != nil {
		t.Fatalf("run(columns) error = %v", err)
	}
	if !strings.Contains(columnsOut.String(), "KEY") || !strings.Contains(columnsOut.String(), "upcomingReminder") {
		t.Fatalf("unexpected columns output %q", columnsOut.String())
	}
}

func TestRunIndexRejectsInvalidInput(t *testing.T) {
	_, args := tempRuntimeArgs(t)
	if err := run(context.Background(), append(append([]string{}, args...), "seed"), io.Discard, io.Discard); err != nil {
		t.Fatalf("run(seed) error = %v", err)
	}
	cases := [][]string{
		{"index", "--columns", "cf_"},
		{"index", "--roles", "JANITOR"},
		{"index", "--locale", "???"},
		{"index", "--mode", "gallery"},
	}
	for _, tc := range cases {
		if err := run(context.Background(), append(append([]string{}, args...), tc...), io.Discard, io.Discard); err == nil {
			t.Fatalf("expected error for %v", tc)
		}
	}
}

func TestRunIndexWithoutOrganization(t *testing.T) {
	_, args := tempRuntimeArgs(t)
	err := run(context.Background(), append(append([]string{}, args...), "index"), io.Discard, io.Discard)
	if err == nil {
		t.Fatal("expected bootstrap error on an empty database")
	}
	if !strings.Contains(err.Error(), "seed") && !strings.Contains(err.Error(), "organization") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRunStartsProgram(t *testing.T) {
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })

	var started tea.Model
	programFactory = func(m tea.Model) program {
		started = m
		return fakeProgram{model: m}
	}

	_, args := tempRuntimeArgs(t)
	if err := run(context.Background(), args, io.Discard, io.Discard); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, ok := started.(tui.Model); !ok {
		t.Fatalf("expected tui.Model, got %T", started)
	}

	if err := run(context.Background(), append(append([]string{}, args...), "tui", "--columns", "name,cf_"), io.Discard, io.Discard); err == nil {
		t.Fatal("expected invalid tui column error")
	}
}

func TestRunTUIModeWritesRuntimeLogsToFileOnly(t *testing.T) {
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })
	programFactory = func(m tea.Model) program { return fakeProgram{model: m} }

	workspace := t.TempDir()
	t.Chdir(workspace)

	dbPath := filepath.Join(workspace, "assetdex.db")
	cfgPath := filepath.Join(workspace, "config.toml")
	var stderr bytes.Buffer
	if err := run(context.Background(), []string{"--dev", "--db", dbPath, "--config", cfgPath, "tui"}, io.Discard, &stderr); err != nil {
		t.Fatalf("run(tui) error = %v", err)
	}
	if got := strings.TrimSpace(stderr.String()); strings.Contains(got, "starting tui program loop") {
		t.Fatalf("expected tui lifecycle logs off the console, got %q", got)
	}

	logDir := filepath.Join(workspace, ".assetdex", "log")
	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	var logPath string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".log") {
			logPath = filepath.Join(logDir, entry.Name())
			break
		}
	}
	if logPath == "" {
		t.Fatalf("expected a .log file in %s", logDir)
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "starting tui program loop") {
		t.Fatalf("expected tui lifecycle entry in dev log, got %q", string(content))
	}
}

func TestRunDBEnvOverridesConfigFile(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "env.db")
	cfgPath := filepath.Join(tmp, "env.toml")
	if err := os.WriteFile(cfgPath, []byte("[database]\npath = \"/nonexistent/ignore-me.db\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("ASSETDEX_CONFIG", cfgPath)
	t.Setenv("ASSETDEX_DB_PATH", dbPath)

	if err := run(context.Background(), []string{"seed"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run(seed with env paths) error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db created at env path, stat error %v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	tmp, args := tempRuntimeArgs(t)
	if err := os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("[logging]\nlevel = \"shout\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	err := run(context.Background(), append(append([]string{}, args...), "seed"), io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected config load error, got %v", err)
	}
}

func TestRunInitConfigWritesOnce(t *testing.T) {
	tmp, args := tempRuntimeArgs(t)
	var out strings.Builder
	if err := run(context.Background(), append(append([]string{}, args...), "init-config"), &out, io.Discard); err != nil {
		t.Fatalf("run(init-config) error = %v", err)
	}
	if !strings.Contains(out.String(), "wrote config") {
		t.Fatalf("unexpected init-config output %q", out.String())
	}
	cfg, err := config.Load(filepath.Join(tmp, "config.toml"), config.Default("/unused.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != filepath.Join(tmp, "assetdex.db") {
		t.Fatalf("unexpected written db path %q", cfg.Database.Path)
	}

	out.Reset()
	if err := run(context.Background(), append(append([]string{}, args...), "init-config"), &out, io.Discard); err != nil {
		t.Fatalf("run(init-config again) error = %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Fatalf("expected existing config to be kept, got %q", out.String())
	}
}

func TestRunServeStopsOnCancelledContext(t *testing.T) {
	_, args := tempRuntimeArgs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, append(append([]string{}, args...), "serve", "--bind", "127.0.0.1:0"), io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run(serve) error = %v", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("ASSETDEX_BOOL_TEST", "true")
	got, ok := parseBoolEnv("ASSETDEX_BOOL_TEST")
	if !ok || !got {
		t.Fatalf("expected true bool env parse, got value=%t ok=%t", got, ok)
	}
	t.Setenv("ASSETDEX_BOOL_TEST", "not-bool")
	if _, ok := parseBoolEnv("ASSETDEX_BOOL_TEST"); ok {
		t.Fatal("expected invalid bool env to return ok=false")
	}
	t.Setenv("ASSETDEX_BOOL_TEST", "")
	if _, ok := parseBoolEnv("ASSETDEX_BOOL_TEST"); ok {
		t.Fatal("expected empty bool env to return ok=false")
	}
}

func TestWorkspaceRootFromUsesNearestMarker(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	nested := filepath.Join(root, "cmd", "assetdex")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if got := workspaceRootFrom(nested); filepath.Clean(got) != filepath.Clean(root) {
		t.Fatalf("expected workspace root %q, got %q", root, got)
	}
}

func TestDevLogFilePath(t *testing.T) {
	now := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)
	got, err := devLogFilePath("/var/log/dex", "asset dex/dev", now)
	if err != nil {
		t.Fatalf("devLogFilePath() error = %v", err)
	}
	if got != filepath.Join("/var/log/dex", "asset-dex-dev-20260222.log") {
		t.Fatalf("unexpected dev log path %q", got)
	}
	if stem := sanitizeLogFileStem(" // "); stem != "assetdex" {
		t.Fatalf("sanitizeLogFileStem() = %q", stem)
	}
}

func TestRuntimeLoggerCanMuteConsoleSink(t *testing.T) {
	var console bytes.Buffer
	cfg := config.Default("/tmp/assetdex.db").Logging

	logger, err := newRuntimeLogger(&console, "assetdex", false, cfg, func() time.Time {
		return time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}
	if logger.DevLogPath() != "" {
		t.Fatal("expected no dev log outside dev mode")
	}

	logger.Info("before")
	logger.SetConsoleEnabled(false)
	logger.Info("during")
	logger.SetConsoleEnabled(true)
	logger.Warn("after")
	logger.Debug("hidden at info level")

	out := console.String()
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Fatalf("expected console log to include before/after, got %q", out)
	}
	if strings.Contains(out, "during") || strings.Contains(out, "hidden at info level") {
		t.Fatalf("expected muted and filtered events to be omitted, got %q", out)
	}

	cfg.Level = "shout"
	if _, err := newRuntimeLogger(&console, "assetdex", false, cfg, nil); err == nil {
		t.Fatal("expected invalid level error")
	}
}
