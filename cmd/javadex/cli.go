package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/javadex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    Config
	Logger    *slog.Logger
	Indexes   javadex.IndexService
	Members   javadex.MemberService
	Search    javadex.SearchService
	Fetcher   javadex.Fetcher
	Anchors   javadex.AnchorExtractor
	Converter javadex.Converter

	// RetryDelays overrides the checker's fetch backoff.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Import ImportCmd `cmd:"" help:"Import a member-search index from a file or URL"`
	List   ListCmd   `cmd:"" help:"List imported indexes"`
	Delete DeleteCmd `cmd:"" help:"Delete an imported index"`
	Search SearchCmd `cmd:"" help:"Search an index for members"`
	Lint   LintCmd   `cmd:"" help:"Check an index file for structural problems"`
	Export ExportCmd `cmd:"" help:"Write an imported index to a file"`
	Check  CheckCmd  `cmd:"" help:"Verify member anchors against the published documentation"`
	Show   ShowCmd   `cmd:"" help:"Print the documentation of the best matching member"`
	Serve  ServeCmd  `cmd:"" help:"Serve imported indexes over HTTP"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name   string `arg:"" help:"Index name"`
	Source string `arg:"" help:"Path or http(s) URL of the index file"`
	Base   string `help:"Documentation root that class pages resolve against (default: the URL's directory)"`
	Format string `enum:"auto,js,json,xml" default:"auto" help:"Source format (auto, js, json, xml)"`
	Force  bool   `short:"f" help:"Replace an existing index with the same name"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Index name"`
	Force bool   `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Name    string `arg:"" help:"Index name"`
	Query   string `arg:"" help:"Member name, prefix or camel-case abbreviation"`
	Limit   int    `short:"n" default:"10" help:"Maximum number of results"`
	Package string `help:"Restrict to a package"`
	Class   string `help:"Restrict to a class"`
}

// LintCmd is the "lint" subcommand.
type LintCmd struct {
	File   string `arg:"" help:"Path of the index file"`
	Format string `enum:"auto,js,json,xml" default:"auto" help:"File format (auto, js, json, xml)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Index name"`
	Format string `enum:"js,json,xml" default:"js" help:"Output format (js, json, xml). js keeps the imported script layout"`
	Output string `short:"o" help:"Output file (default: stdout)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Name        string  `arg:"" help:"Index name"`
	Concurrency int     `short:"c" help:"Concurrent page fetches (default from config)"`
	RPS         float64 `name:"rps" help:"Requests per second per host (default from config)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name  string `arg:"" help:"Index name"`
	Query string `arg:"" help:"Member to show"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Names []string `arg:"" optional:"" help:"Indexes to serve (default: all)"`
	Addr  string   `help:"Listen address (default from config)"`
}
