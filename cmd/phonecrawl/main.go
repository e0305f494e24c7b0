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

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/phonecrawl"
	"github.com/fwojciec/phonecrawl/crawl"
	"github.com/fwojciec/phonecrawl/email"
	"github.com/fwojciec/phonecrawl/fs"
	phonehttp "github.com/fwojciec/phonecrawl/http"
	phoneslog "github.com/fwojciec/phonecrawl/slog"
	"github.com/fwojciec/phonecrawl/sqlite"
)

// AppName is used for the data directory and the default database name.
const AppName = "phonecrawl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads SMTP settings. Set before calling Run().
	Getenv func(string) string

	// Fetcher replaces the HTTP fetcher for end-to-end testing.
	Fetcher phonecrawl.Fetcher

	// SendMail replaces SMTP delivery for end-to-end testing.
	SendMail email.SendFunc

	// SQLite database used by the history store, if any.
	DB *sqlite.DB

	http *phonehttp.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.http != nil {
		_ = m.http.Close()
	}
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
		kong.Name(AppName),
		kong.Description("Crawl classifieds sites for contact phone numbers"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"defaultOut": defaultDataDir(),
			"defaultDB":  filepath.Join(defaultDataDir(), AppName+".db"),
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'phonecrawl --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case "crawl":
		defer m.Close()
		if err := m.wireCrawl(deps, &cli.Crawl); err != nil {
			return err
		}
	case "numbers":
		if err := m.openDB(stderr, cli.Numbers.DB); err != nil {
			return err
		}
		defer m.Close()
		deps.History = sqlite.NewStore(m.DB)
	case "runs":
		if err := m.openDB(stderr, cli.Runs.DB); err != nil {
			return err
		}
		defer m.Close()
		deps.History = sqlite.NewStore(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireCrawl builds the logger, fetcher and result sinks for the crawl command.
func (m *Main) wireCrawl(deps *Dependencies, c *CrawlCmd) error {
	level := slog.LevelError
	if c.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		m.http = phonehttp.NewFetcher(
			phonehttp.WithTimeout(c.Timeout),
			phonehttp.WithInsecureSkipVerify(c.Insecure),
		)
		fetcher = m.http
	}
	if c.Verbose {
		fetcher = phoneslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	deps.Fetcher = fetcher

	store := fs.NewResultStore(c.Out)
	sinks := crawl.MultiSink{phoneslog.NewLoggingSink(store, "files", deps.Logger)}

	if c.DB != "" {
		if err := m.openDB(deps.Stderr, c.DB); err != nil {
			return err
		}
		sinks = append(sinks, phoneslog.NewLoggingSink(sqlite.NewStore(m.DB), "sqlite", deps.Logger))
	}

	if c.Email {
		cfg, err := email.ConfigFromEnv(m.Getenv)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set %s, %s and %s to send results by email\n", email.EnvHost, email.EnvUser, email.EnvTo)
			return err
		}
		opts := []email.Option{email.WithAttachments(store.Files)}
		if m.SendMail != nil {
			opts = append(opts, email.WithSendFunc(m.SendMail))
		}
		sinks = append(sinks, phoneslog.NewLoggingSink(email.NewNotifier(cfg, opts...), "email", deps.Logger))
	}

	deps.Sink = sinks
	return nil
}

func (m *Main) openDB(stderr io.Writer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Use --db to choose a different database path")
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func defaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
