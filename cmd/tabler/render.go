package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/bjaus/tabler"
	"github.com/bjaus/tabler/internal/config"
	"github.com/bjaus/tabler/internal/logging"
)

// drivers maps --driver values to registered database/sql driver names.
var drivers = map[string]string{
	"mysql":      "mysql",
	"postgres":   "postgres",
	"postgresql": "postgres",
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel(), cfg.LogFormat)
	if err != nil {
		return err
	}

	start := time.Now()
	src, closeSrc, err := openSource(cmd.Context(), cmd.InOrStdin(), cfg, args, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	sort := tabler.NewSort(cfg.Sortable...).Multisort(true).Params(url.Values{"sort": {cfg.Sort}})
	if orders := sort.Orders(); len(orders) > 0 {
		if s, ok := src.(tabler.SliceSource); ok {
			src = s.Sorted(orders...)
		} else {
			logger.WithField("sort", cfg.Sort).Warn("sorting SQL results is left to the query")
		}
	}

	conf := tabler.NewConfiguration(src, cfg.Page, cfg.PageSize).
		ExceptColumns(cfg.Except...).
		URLPath(cfg.URLPath)
	if len(cfg.Sortable) > 0 {
		conf = conf.SortParams(sort.SortParams())
		if cfg.Sort != "" {
			conf = conf.QueryParams(url.Values{"sort": {cfg.Sort}})
		}
	}
	if cfg.Columns != "" {
		if conf, err = withColumnSpecs(conf, cfg.Columns); err != nil {
			return err
		}
		logger.WithField("file", cfg.Columns).Debug("loaded column specs")
	}

	out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Out)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := write(out, conf, cfg); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"format":  cfg.Format,
		"elapsed": time.Since(start).String(),
	}).Debug("rendered table")
	return nil
}

func write(w io.Writer, conf tabler.Configuration, cfg config.Config) error {
	if cfg.Format == "text" {
		border, err := tabler.ParseBorderStyle(cfg.Border)
		if err != nil {
			return err
		}
		return tabler.NewTextTable(conf).Border(border).ShowFooter(cfg.Footer).Write(w)
	}

	table := tabler.NewTable(conf).
		Class(cfg.Class).
		EmptyText(cfg.EmptyText).
		ShowFooter(cfg.Footer)
	html, err := table.Render()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, html)
	return err
}

// openSource returns the rows to render and a function releasing them.
func openSource(ctx context.Context, stdin io.Reader, cfg config.Config, args []string, logger *logrus.Logger) (tabler.Source, func(), error) {
	noop := func() {}
	if cfg.Driver != "" {
		name, ok := drivers[strings.ToLower(cfg.Driver)]
		if !ok {
			return nil, noop, fmt.Errorf("unsupported driver %q", cfg.Driver)
		}
		db, err := sql.Open(name, cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.WithField("driver", name).Debug("connected to database")
		return tabler.NewSQLSource(ctx, db, cfg.Query), func() { db.Close() }, nil
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	src, err := readFile(r, path)
	if err != nil {
		return nil, noop, err
	}
	logger.WithFields(logrus.Fields{"file": path, "rows": src.Len()}).Debug("loaded rows")
	return src, noop, nil
}

// readFile picks a reader by extension. Standard input is read as YAML,
// which also accepts JSON.
func readFile(r io.Reader, path string) (tabler.SliceSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return tabler.ReadCSV(r, ',')
	case ".tsv":
		return tabler.ReadCSV(r, '\t')
	case ".json", ".yaml", ".yml", "":
		return tabler.ReadYAML(r)
	default:
		return tabler.SliceSource{}, fmt.Errorf("%w: %s", tabler.ErrUnsupportedSource, path)
	}
}

func withColumnSpecs(conf tabler.Configuration, path string) (tabler.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return conf, fmt.Errorf("failed to open column specs: %w", err)
	}
	defer f.Close()
	columns, err := tabler.LoadColumnSpecs(f)
	if err != nil {
		return conf, fmt.Errorf("failed to load %s: %w", path, err)
	}
	for _, c := range columns {
		conf = conf.AddColumn(c.Key, c.Column)
	}
	return conf, nil
}

func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func runColumns(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()
	columns, err := tabler.LoadColumnSpecs(f)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, c := range columns {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.Key, columnKind(c.Column)); err != nil {
			return err
		}
	}
	return nil
}

func columnKind(col tabler.Column) string {
	switch col.(type) {
	case tabler.ButtonColumn:
		return "button"
	case tabler.CrudColumn:
		return "crud"
	default:
		return "column"
	}
}
