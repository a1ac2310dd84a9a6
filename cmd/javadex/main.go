package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/goquery"
	"github.com/fwojciec/javadex/htmltomarkdown"
	jhttp "github.com/fwojciec/javadex/http"
	jslog "github.com/fwojciec/javadex/slog"
	"github.com/fwojciec/javadex/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Empty means the configured path. Set before calling Run().
	DBPath string

	// Config file path. A missing file leaves the defaults in place.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher, for end-to-end testing.
	Fetcher javadex.Fetcher

	// Logger overrides the stderr logger built from the config.
	Logger *slog.Logger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("javadex"),
		kong.Description("Import, search and verify javadoc member-search indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		fmt.Fprintln(stderr, "error: no command specified. Run 'javadex --help' to see available commands")
		return javadex.Errorf(javadex.EINVALID, "no command specified")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cfg, err := LoadConfig(m.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", javadex.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	logger := m.Logger
	if logger == nil {
		logger = newLogger(stderr, cfg.LogLevel)
	}
	deps.Logger = logger

	deps.Anchors = goquery.NewAnchorExtractor()
	deps.Converter = htmltomarkdown.NewConverter()

	fetcher := m.Fetcher
	if fetcher == nil {
		f := jhttp.NewFetcher(jhttp.WithTimeout(cfg.HTTP.Timeout))
		defer f.Close()
		fetcher = f
	}
	deps.Fetcher = jslog.NewLoggingFetcher(fetcher, logger)

	// lint works on files alone
	if cmd == "lint" {
		return kongCtx.Run(deps)
	}

	dbPath := m.DBPath
	if dbPath == "" {
		dbPath = cfg.DB
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JAVADEX_DB to use a different database path\n")
		fmt.Fprintf(stderr, "error: failed to open database at %q: %v\n", dbPath, err)
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps.Indexes = jslog.NewLoggingIndexService(sqlite.NewIndexService(m.DB), logger)
	deps.Members = sqlite.NewMemberService(m.DB)
	deps.Search = jslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB), logger)

	return kongCtx.Run(deps)
}

// newLogger builds a text logger on w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultConfigPath() string {
	if path := os.Getenv("JAVADEX_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".javadex", "config.yaml")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "javadex.db"
	}
	return filepath.Join(home, ".javadex", "javadex.db")
}
