package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// PageSize is the fixed number of records requested per page.
const PageSize = 10

const envPrefix = "unifiedlist"

// Column describes one table column bound to a record key.
type Column struct {
	Key        string `mapstructure:"key" yaml:"key"`
	Label      string `mapstructure:"label" yaml:"label"`
	DetailLink bool   `mapstructure:"detail_link" yaml:"detail_link,omitempty"`
}

// DetailFields maps the detail view slots onto record keys.
type DetailFields struct {
	ID      string `mapstructure:"id" yaml:"id"`
	Title   string `mapstructure:"title" yaml:"title"`
	Owner   string `mapstructure:"owner" yaml:"owner"`
	RegDate string `mapstructure:"reg_date" yaml:"reg_date"`
}

// CSRF holds an optional header/value pair sent with every JSON request.
type CSRF struct {
	Header string `mapstructure:"header" yaml:"header,omitempty"`
	Token  string `mapstructure:"token" yaml:"token,omitempty"`
}

// Enabled reports whether both halves of the pair are present.
func (c CSRF) Enabled() bool { return c.Header != "" && c.Token != "" }

// Export configures where downloaded spreadsheets land.
type Export struct {
	Dir         string `mapstructure:"dir" yaml:"dir,omitempty"`
	DefaultName string `mapstructure:"default_name" yaml:"default_name"`
}

// Features toggles the optional parts of the list screen. A disabled feature
// behaves like a control that is missing from the page: its key does nothing.
type Features struct {
	Search    bool `mapstructure:"search" yaml:"search"`
	Create    bool `mapstructure:"create" yaml:"create"`
	Update    bool `mapstructure:"update" yaml:"update"`
	Delete    bool `mapstructure:"delete" yaml:"delete"`
	Export    bool `mapstructure:"export" yaml:"export"`
	SelectAll bool `mapstructure:"select_all" yaml:"select_all"`
}

// Log configures the JSON-lines debug log.
type Log struct {
	Level string `mapstructure:"level" yaml:"level,omitempty"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// Config is the immutable description of one list screen.
type Config struct {
	Title        string        `mapstructure:"title" yaml:"title,omitempty"`
	APIURL       string        `mapstructure:"api_url" yaml:"api_url"`
	LoginURL     string        `mapstructure:"login_url" yaml:"login_url,omitempty"`
	Columns      []Column      `mapstructure:"columns" yaml:"columns"`
	DetailFields DetailFields  `mapstructure:"detail_fields" yaml:"detail_fields"`
	CSRF         CSRF          `mapstructure:"csrf" yaml:"csrf,omitempty"`
	TokenFile    string        `mapstructure:"token_file" yaml:"token_file,omitempty"`
	Export       Export        `mapstructure:"export" yaml:"export"`
	Features     Features      `mapstructure:"features" yaml:"features"`
	Log          Log           `mapstructure:"log" yaml:"log,omitempty"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// DefaultPath returns $XDG_CONFIG_HOME/unifiedlist/config.yaml, falling back
// to ~/.config/unifiedlist/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "unifiedlist", "config.yaml")
}

// DefaultTokenPath is where the bearer token is kept unless token_file says otherwise.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".unifiedlist_token")
}

// Default returns a starter configuration for a title/owner resource.
func Default() Config {
	return Config{
		Title:    "Records",
		APIURL:   "http://localhost:8080/api/records",
		LoginURL: "/login",
		Columns: []Column{
			{Key: "id", Label: "ID"},
			{Key: "title", Label: "Title", DetailLink: true},
			{Key: "owner", Label: "Owner"},
			{Key: "regDate", Label: "Registered"},
		},
		DetailFields: DetailFields{ID: "id", Title: "title", Owner: "owner", RegDate: "regDate"},
		TokenFile:    DefaultTokenPath(),
		Export:       Export{DefaultName: "list.xlsx"},
		Features: Features{
			Search: true, Create: true, Update: true,
			Delete: true, Export: true, SelectAll: true,
		},
		Timeout: 10 * time.Second,
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	d := Default()
	v.SetDefault("title", d.Title)
	v.SetDefault("api_url", "")
	v.SetDefault("login_url", d.LoginURL)
	v.SetDefault("detail_fields.id", d.DetailFields.ID)
	v.SetDefault("detail_fields.title", d.DetailFields.Title)
	v.SetDefault("detail_fields.owner", d.DetailFields.Owner)
	v.SetDefault("detail_fields.reg_date", d.DetailFields.RegDate)
	v.SetDefault("csrf.header", "")
	v.SetDefault("csrf.token", "")
	v.SetDefault("token_file", d.TokenFile)
	v.SetDefault("export.dir", "")
	v.SetDefault("export.default_name", d.Export.DefaultName)
	v.SetDefault("features.search", true)
	v.SetDefault("features.create", true)
	v.SetDefault("features.update", true)
	v.SetDefault("features.delete", true)
	v.SetDefault("features.export", true)
	v.SetDefault("features.select_all", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("timeout", d.Timeout)
	return v
}

// FlagKeys maps command-line flag names onto config keys.
var FlagKeys = map[string]string{
	"api-url":   "api_url",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Load reads the config file at path. A missing file is not an error: the
// defaults plus UNIFIEDLIST_* environment variables are returned instead.
func Load(path string) (Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadWithFlags is Load with command-line overrides. Only flags the user
// actually set are bound, so unset flags never shadow file values.
func LoadWithFlags(path string, fs *pflag.FlagSet) (Config, error) {
	v := newViper(path)
	if fs != nil {
		var bindErr error
		fs.Visit(func(f *pflag.Flag) {
			key, ok := FlagKeys[f.Name]
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = Default().Columns
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return errors.New("api_url is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects configurations the list screen cannot run with.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url is required")
	}
	if len(c.Columns) == 0 {
		return errors.New("at least one column is required")
	}
	for i, col := range c.Columns {
		if strings.TrimSpace(col.Key) == "" {
			return fmt.Errorf("column %d has no key", i)
		}
	}
	return nil
}
