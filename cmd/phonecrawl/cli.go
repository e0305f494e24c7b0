package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/phonecrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher phonecrawl.Fetcher
	Sink    phonecrawl.ResultSink
	History phonecrawl.HistoryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site and collect phone numbers"`
	Sites   SitesCmd   `cmd:"" help:"List built-in site presets"`
	Numbers NumbersCmd `cmd:"" help:"List every number recorded for a site"`
	Runs    RunsCmd    `cmd:"" help:"List recorded crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Site        string        `arg:"" optional:"" help:"Built-in site preset (see 'phonecrawl sites')"`
	Config      string        `short:"f" help:"Load the site from a YAML file"`
	Pages       int           `short:"n" default:"-1" help:"Stop after this many pages (0 = unlimited, default: site setting)"`
	Interval    time.Duration `short:"i" help:"Minimum spacing between fetches (default: site setting)"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"20s" help:"Per-request timeout"`
	Insecure    bool          `help:"Skip TLS certificate verification"`
	Out         string        `short:"o" default:"${defaultOut}" help:"Output directory"`
	DB          string        `help:"Record the run in this SQLite database"`
	Email       bool          `help:"Email the results (configured via PHONECRAWL_SMTP_* variables)"`
	Verbose     bool          `short:"v" help:"Log every fetch and publish"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// NumbersCmd is the "numbers" subcommand.
type NumbersCmd struct {
	Site string `arg:"" help:"Site name"`
	DB   string `default:"${defaultDB}" help:"SQLite database path"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Site  string `arg:"" optional:"" help:"Only show runs of this site"`
	Limit int    `short:"l" default:"20" help:"Maximum number of runs to show (0 = all)"`
	DB    string `default:"${defaultDB}" help:"SQLite database path"`
}
