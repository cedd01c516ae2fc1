package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"whilelang/internal/config"
	"whilelang/internal/logger"
	"whilelang/internal/runner"
	"whilelang/pkg/color"
)

type options struct {
	Help       bool   // Show help message
	NoColor    bool   // Disable colored output
	Tree       bool   // Print the program tree
	Strict     bool   // Abort on the first runtime error
	SourceFile string // Path to the source file
	Log        string // "log" or "nolog"
	ConfigFile string // Path to the YAML configuration
	DB         string // SQLite file to store runs in
	Format     string // Snapshot format
}

// Main entry point for the while-language interpreter.
func main() {
	opts := options{}

	flag.BoolVar(&opts.Help, "h", false, "Show help")
	flag.BoolVar(&opts.NoColor, "n", false, "No color")
	flag.BoolVar(&opts.Tree, "tree", false, "Print the parsed program tree")
	flag.BoolVar(&opts.Strict, "strict", false, "Stop at the first runtime error")
	flag.StringVar(&opts.SourceFile, "i", "", "Source file")
	flag.StringVar(&opts.Log, "log", "", "Line trace: log or nolog")
	flag.StringVar(&opts.ConfigFile, "config", "", "YAML configuration (default "+config.DefaultPath+" if present)")
	flag.StringVar(&opts.DB, "db", "", "SQLite file to store runs in")
	flag.StringVar(&opts.Format, "format", "", "Snapshot format: text or yaml")

	flag.Parse()
	args := flag.Args()

	if opts.Help {
		fmt.Printf("Usage: %s [options] -i <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if opts.NoColor {
		color.EnableColor(false)
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		logger.Init(false, opts.NoColor)
		log.Fatal("Invalid configuration", "error", err)
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Init(false, opts.NoColor)
		log.Fatal("Invalid configuration", "error", err)
	}

	logger.Init(cfg.Debug(), !cfg.Color)

	if cfg.Log == "" {
		fmt.Println(color.Warning("no -log flag given, using nolog"))
	}

	if opts.SourceFile == "" && len(args) > 0 {
		opts.SourceFile = args[0]
	}
	if opts.SourceFile == "" {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	r := runner.Runner{
		SourceFile: opts.SourceFile,
		Config:     cfg,
		Tree:       opts.Tree,
	}

	if err := r.Run(); err != nil {
		var reported *runner.ReportedError
		if errors.As(err, &reported) {
			os.Exit(1)
		}
		log.Fatal("Run failed", "error", err)
	}
}

// apply overrides cfg with the flags given on the command line
func (o *options) apply(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log":
			cfg.Log = o.Log
		case "n":
			cfg.Color = !o.NoColor
		case "db":
			cfg.DB = o.DB
		case "format":
			cfg.Format = o.Format
		case "strict":
			cfg.Strict = o.Strict
		}
	})
}
