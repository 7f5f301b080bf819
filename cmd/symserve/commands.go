package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bastiangx/symserve/internal/cli"
	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/dictionary"
	"github.com/bastiangx/symserve/pkg/server"
	"github.com/bastiangx/symserve/pkg/session"
	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var initialQuery string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MessagePack IPC server on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Search interactively -- useful for testing and debugging",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCLI(initialQuery)
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Print the results of one query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		sess.SetSink(cli.NewTerminalSink(os.Stdout, cfg.CLI.ShowTiming, cfg.CLI.ShowKind))
		sess.Input(strings.Join(args, " "))
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a corpus file to another format",
	Long: `Convert reads a corpus file and writes it in the format given by the
output extension (.json, .js, .yaml, .toml, .msgpack or .db).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dictionary.Load(args[0])
		if err != nil {
			return err
		}
		if err := dictionary.Save(data, args[1]); err != nil {
			return err
		}
		log.Infof("Wrote %d packages to %s", len(data.Packages), args[1])
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the active config path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetActiveConfigPath(activeConfig))
	},
}

var configRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Overwrite the default config file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RebuildConfigFile()
		if err != nil {
			return fmt.Errorf("failed to rebuild config: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save --package, --limit and --inline to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if activeConfig == "" {
			return fmt.Errorf("no writable config file")
		}
		flags := cmd.Flags()
		var (
			limit  *int
			inline *bool
			mode   *string
			pkg    *string
		)
		if flags.Changed("limit") {
			limit = &limitFlag
		}
		if flags.Changed("inline") {
			inline = &inlineFlag
		}
		if flags.Changed("package") {
			m := config.ModeGlobal
			if pkgFlag != "" {
				m = config.ModePackage
			}
			mode, pkg = &m, &pkgFlag
		}
		if err := cfg.Update(activeConfig, limit, inline, mode, pkg); err != nil {
			return err
		}
		log.Infof("Saved config to %s", activeConfig)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ SymServe ] Fuzzy search over package docs")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)
	},
}

func init() {
	cliCmd.Flags().StringVarP(&initialQuery, "query", "q", "", "Initial query to run")
	configCmd.AddCommand(configPathCmd, configRebuildCmd, configSetCmd)
}

func runServe() error {
	data, err := loadCorpus()
	if err != nil {
		return err
	}
	log.Debug("spawning IPC")
	srv, err := server.NewServer(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to init server: %w", err)
	}
	showStartupInfo()
	return srv.Start()
}

func runCLI(query string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	log.SetReportTimestamp(false)
	sess.SetSink(cli.NewTerminalSink(os.Stdout, cfg.CLI.ShowTiming, cfg.CLI.ShowKind))
	return cli.NewInputHandler(sess, os.Stdin, os.Stdout, query).Start()
}

// newSession builds the configured scope and a session over it.
func newSession() (*session.Session, error) {
	data, err := loadCorpus()
	if err != nil {
		return nil, err
	}
	scope := scopeOf(cfg)
	c, err := corpus.Build(data, corpus.Options{Package: scope})
	if err != nil {
		return nil, err
	}

	inline := scope != "" && cfg.Search.Inline
	limit := cfg.Search.MaxResults
	if inline {
		limit = suggest.NoLimit
	}
	log.Debug("Session info:", "scope", scope, "entities", c.Len(), "limit", limit, "inline", inline)

	ranker := suggest.NewRanker(c.Entities(), cfg.RankerOptions())
	return session.New(ranker, session.Options{
		Limit:          limit,
		Inline:         inline,
		Scope:          scope,
		HighlightOpen:  cfg.Search.HighlightOpen,
		HighlightClose: cfg.Search.HighlightClose,
	}), nil
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo() {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " SymServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("corpus: ( %s )", strings.Join(resolvedFiles, ", "))
	log.Infof("scope: ( %s )", displayScope(scopeOf(cfg)))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

func displayScope(scope string) string {
	if scope == "" {
		return config.ModeGlobal
	}
	return scope
}
