package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hylla/assetdex/internal/cell"
	"github.com/hylla/assetdex/internal/domain"
	"github.com/hylla/assetdex/internal/format"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

type Config struct {
	Database     DatabaseConfig     `toml:"database"`
	Viewer       ViewerConfig       `toml:"viewer"`
	Organization OrganizationConfig `toml:"organization"`
	View         ViewConfig         `toml:"view"`
	Links        LinksConfig        `toml:"links"`
	Logging      LoggingConfig      `toml:"logging"`
	Server       ServerConfig       `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ViewerConfig describes who is looking at the index.
type ViewerConfig struct {
	Locale   string   `toml:"locale"`
	TimeZone string   `toml:"time_zone"`
	Roles    []string `toml:"roles"`
}

type OrganizationConfig struct {
	ID       string `toml:"id"`
	Currency string `toml:"currency"` // used when seeding
}

type ViewConfig struct {
	ShowImage    bool     `toml:"show_image"`
	FreezeColumn bool     `toml:"freeze_column"`
	Mode         string   `toml:"mode"` // simple | advanced
	Columns      []string `toml:"columns"`
}

type LinksConfig struct {
	TrackingRef string `toml:"tracking_ref"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// DevFileConfig controls the logfmt file sink used in dev mode.
type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type ServerConfig struct {
	Bind        string `toml:"bind"`
	APIEndpoint string `toml:"api_endpoint"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Viewer: ViewerConfig{
			Locale:   format.DefaultLocale,
			TimeZone: "UTC",
			Roles:    []string{string(domain.RoleOwner)},
		},
		Organization: OrganizationConfig{
			Currency: "USD",
		},
		View: ViewConfig{
			ShowImage:    true,
			FreezeColumn: true,
			Mode:         string(cell.ModeAdvanced),
		},
		Links: LinksConfig{
			TrackingRef: cell.DefaultTrackingRef,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".assetdex/log",
			},
		},
		Server: ServerConfig{
			Bind:        "127.0.0.1:5437",
			APIEndpoint: "/api/v1",
			MCPEndpoint: "/mcp",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	if locale := strings.TrimSpace(c.Viewer.Locale); locale != "" {
		if _, err := language.Parse(locale); err != nil {
			return fmt.Errorf("invalid viewer.locale %q: %w", c.Viewer.Locale, err)
		}
	}
	if tz := strings.TrimSpace(c.Viewer.TimeZone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("invalid viewer.time_zone %q: %w", c.Viewer.TimeZone, err)
		}
	}
	if _, err := domain.ParseRoles(c.Viewer.Roles); err != nil {
		return fmt.Errorf("invalid viewer.roles: %w", err)
	}

	if code := strings.TrimSpace(c.Organization.Currency); code != "" && !format.ValidCurrency(code) {
		return fmt.Errorf("invalid organization.currency: %q", c.Organization.Currency)
	}

	switch cell.Mode(strings.ToLower(strings.TrimSpace(c.View.Mode))) {
	case "", cell.ModeSimple, cell.ModeAdvanced:
	default:
		return fmt.Errorf("invalid view.mode: %q", c.View.Mode)
	}
	for idx, raw := range c.View.Columns {
		if _, err := domain.ParseColumnKey(raw); err != nil {
			return fmt.Errorf("view.columns[%d]: %w", idx, err)
		}
	}

	if _, err := log.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}

	for name, endpoint := range map[string]string{
		"server.api_endpoint": c.Server.APIEndpoint,
		"server.mcp_endpoint": c.Server.MCPEndpoint,
	} {
		endpoint = strings.TrimSpace(endpoint)
		if endpoint != "" && !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s must start with /: %q", name, endpoint)
		}
	}

	return nil
}

// Roles returns the parsed viewer roles.
func (c Config) Roles() []domain.Role {
	roles, err := domain.ParseRoles(c.Viewer.Roles)
	if err != nil {
		return nil
	}
	return roles
}

// Columns returns the parsed default column list; invalid entries are skipped.
func (c Config) Columns() []domain.ColumnKey {
	out := make([]domain.ColumnKey, 0, len(c.View.Columns))
	for _, raw := range c.View.Columns {
		key, err := domain.ParseColumnKey(raw)
		if err != nil {
			continue
		}
		out = append(out, key)
	}
	return out
}

// Preferences converts the [view] section into viewer preferences.
func (c Config) Preferences() cell.Preferences {
	mode := cell.Mode(strings.ToLower(strings.TrimSpace(c.View.Mode)))
	if mode == "" {
		mode = cell.ModeAdvanced
	}
	return cell.Preferences{
		ShowImage:    c.View.ShowImage,
		FreezeColumn: c.View.FreezeColumn,
		Mode:         mode,
	}
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteIfMissing writes cfg as TOML to path unless a file already exists.
// It reports whether a file was written.
func WriteIfMissing(path string, cfg Config) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, errors.New("config path is required")
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
