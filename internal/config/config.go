// Package config resolves the tabler command's settings from flags,
// TABLER_* environment variables and an optional YAML config file, in that
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TABLER_PAGE_SIZE.
const EnvPrefix = "tabler"

// Config holds the settings of one render.
type Config struct {
	// Source
	Driver string
	DSN    string
	Query  string

	// Columns
	Columns  string
	Except   []string
	Sortable []string

	// Table
	Page      int
	PageSize  int
	Sort      string
	URLPath   string
	EmptyText string
	Footer    bool
	Class     string

	// Output
	Format string
	Border string
	Out    string

	// Logging
	Debug     bool
	LogFormat string
}

// RegisterFlags adds the render flags, with their defaults, to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML config file")
	fs.String("driver", "", "database/sql driver: mysql, postgres or sqlite")
	fs.String("dsn", "", "data source name for --driver")
	fs.String("query", "", "SQL query producing the rows")
	fs.String("columns", "", "YAML column spec file")
	fs.StringSlice("except", nil, "fields to leave out")
	fs.StringSlice("sortable", nil, "fields rendered with sort links")
	fs.Int("page", 1, "current page, used in sort links")
	fs.Int("page-size", 0, "rows per page; short pages are padded with empty rows")
	fs.String("sort", "", "active sort, e.g. -id,name")
	fs.String("url-path", "", "path sort links point to")
	fs.String("empty-text", "empty table", "message shown when there are no rows")
	fs.Bool("footer", false, "render the table footer")
	fs.String("class", "", "CSS class of the <table> element")
	fs.String("format", "html", "output format: html or text")
	fs.String("border", "rounded", "text border style: rounded, ascii, heavy, double or none")
	fs.StringP("out", "o", "", "output file (default stdout)")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("log-format", "text", "log format: text, json or json-pretty")
}

// Load resolves the settings for the flags registered by RegisterFlags.
// Flags set on the command line win over the environment, which wins over
// the file named by --config.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Driver:    v.GetString("driver"),
		DSN:       v.GetString("dsn"),
		Query:     v.GetString("query"),
		Columns:   v.GetString("columns"),
		Except:    v.GetStringSlice("except"),
		Sortable:  v.GetStringSlice("sortable"),
		Page:      v.GetInt("page"),
		PageSize:  v.GetInt("page-size"),
		Sort:      v.GetString("sort"),
		URLPath:   v.GetString("url-path"),
		EmptyText: v.GetString("empty-text"),
		Footer:    v.GetBool("footer"),
		Class:     v.GetString("class"),
		Format:    v.GetString("format"),
		Border:    v.GetString("border"),
		Out:       v.GetString("out"),
		Debug:     v.GetBool("debug"),
		LogFormat: v.GetString("log-format"),
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("page-size must not be negative, got %d", c.PageSize)
	}
	if (c.Driver == "") != (c.DSN == "") {
		return fmt.Errorf("--driver and --dsn must be set together")
	}
	if c.Driver != "" && c.Query == "" {
		return fmt.Errorf("--query is required with --driver")
	}
	switch c.Format {
	case "html", "text":
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}

// LogLevel returns the logrus level name for the settings.
func (c Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	return "info"
}
