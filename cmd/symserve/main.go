/*
Package main implements the symbol search server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

SymServe ranks the entities of a documentation corpus (constants, variables,
types, procedures and builtins of every package) against a short fuzzy query.
It can operate as a MessagePack IPC server for documentation front ends and
editors, or as an interactive CLI for testing and debugging.

# Usage

Start the server with the default corpus file:

	symserve serve

Search a single package interactively, starting with a query:

	symserve cli --package fmt -q print

Print the results of one query and exit:

	symserve query tolo

Convert a corpus between formats:

	symserve convert pkg-data.js pkg-data.db

When no subcommand is given, symserve runs the CLI if stdin is a terminal
and the IPC server otherwise.

# Corpus files

The --data flag names one or more corpus files. Relative names are looked up
in the working directory, next to the executable, in its data/ directory and
in the per-user data directory. Files are merged in order; a later file
overrides packages of the same name.

# Configuration

Runtime configuration lives in a TOML file that is created with defaults
when missing:

	[search]
	mode = "global"
	max_results = 32
	cache_size = 256

	[scoring]
	adjacency_bonus = 5
	separator_bonus = 10
	camel_bonus = 10
	substring_bonus = 50

	[server]
	max_query_length = 60
	max_sessions = 64

Command line flags override the file for a single run. `symserve config set`
writes them back.

# IPC Protocol

See package server for the request and response envelopes.

	{"id": "1", "op": "open", "q": "tolo"}
	{"id": "1", "s": "5d0c…", "i": [{"f": "strings.to_lower", "r": 1}], "cur": -1, "t": 85}
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/symserve/internal/logger"
	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0-beta"
	AppName = "symserve"
	gh      = "https://github.com/bastiangx/symserve"

	defaultDataFile = "pkg-data.js"
)

var (
	dataFiles  []string
	configPath string
	debugMode  bool
	pkgFlag    string
	limitFlag  int
	inlineFlag bool

	cfg           *config.Config
	activeConfig  string
	resolvedFiles []string
)

var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "SymServe ranks documentation symbols against fuzzy queries",
	Long: `SymServe serves fuzzy symbol search over a package documentation corpus.

Without a subcommand it starts the interactive CLI when stdin is a terminal
and the MessagePack IPC server otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup(debugMode)
		switch cmd.Name() {
		case "version", "help":
			return nil
		}

		var err error
		cfg, activeConfig, err = config.LoadConfigWithPriority(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return runCLI("")
		}
		return runServe()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringArrayVar(&dataFiles, "data", []string{defaultDataFile}, "Corpus file to load (repeatable)")
	pf.StringVar(&configPath, "config", "", "Path to config.toml")
	pf.BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")
	pf.StringVarP(&pkgFlag, "package", "p", "", "Restrict search to one package")
	pf.IntVarP(&limitFlag, "limit", "l", 0, "Maximum number of results to show (0 for config default)")
	pf.BoolVar(&inlineFlag, "inline", false, "Show every match of a package search and report the inline order")

	rootCmd.AddCommand(serveCmd, cliCmd, queryCmd, convertCmd, configCmd, versionCmd)
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("package") {
		if pkgFlag == "" {
			c.Search.Mode = config.ModeGlobal
		} else {
			c.Search.Mode = config.ModePackage
		}
		c.Search.Package = pkgFlag
	}
	if flags.Changed("limit") && limitFlag > 0 {
		c.Search.MaxResults = limitFlag
	}
	if flags.Changed("inline") {
		c.Search.Inline = inlineFlag
	}
}

// scopeOf returns the package searched under c, or "" for the whole corpus.
func scopeOf(c *config.Config) string {
	if c.Search.Mode == config.ModePackage {
		return c.Search.Package
	}
	return ""
}

// loadCorpus resolves and merges the --data files.
func loadCorpus() (*corpus.Data, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Error("Either env is not set or system is not supported")
		return nil, fmt.Errorf("failed to init path resolver: %w", err)
	}

	resolvedFiles = resolvedFiles[:0]
	for _, name := range dataFiles {
		path, err := resolver.ResolveDataFile(name)
		if err != nil {
			log.Errorf("Searched: %v", resolver.Candidates(name))
			return nil, err
		}
		resolvedFiles = append(resolvedFiles, path)
	}

	loader := dictionary.NewLoader(resolvedFiles...)
	data, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	stats := loader.GetStats()
	log.Debug("Corpus loaded",
		"files", stats.Files,
		"packages", stats.Packages,
		"entities", stats.Entities,
		"builtins", stats.Builtins,
		"elapsed", stats.Elapsed)
	return data, nil
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
