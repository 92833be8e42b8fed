package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portfolio-cards/gradecard/internal/config"
	"github.com/portfolio-cards/gradecard/internal/gradestore"
	"github.com/portfolio-cards/gradecard/internal/journal"
	"github.com/portfolio-cards/gradecard/internal/logging"
	"github.com/portfolio-cards/gradecard/internal/portfolio"
)

var (
	// Global flags
	configPath string
	baseURL    string
	cardID     string
	verbose    bool
	debugMode  bool

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gradecard",
	Short: "Portfolio card with a student's profile and grades",
	Long: `gradecard shows a student's portfolio card: a profile header and the
Challenge, Global and Checkpoint grades kept by a remote grade store.

Run without arguments to start the terminal client.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath, flagOverrides)
		if err != nil {
			return err
		}
		cfg = c

		opts := logging.Options{Level: cfg.Log.Level, Verbose: verbose}
		// The terminal client owns stdout/stderr, so it logs to a file
		if !cmd.HasParent() || cmd.Name() == "tui" {
			opts.File = cfg.Log.File
		}
		logger, err = logging.New(opts)
		return err
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .gradecard/config.yaml, then ~/.gradecard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Grade store base URL (or set GRADECARD_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cardID, "card", "", "Card id under /api/base-notas (or set GRADECARD_CARD_ID)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Show the debug panel in the terminal client")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the command tree and flushes the logger whether or not the
// command failed.
func execute(args []string) error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// flagOverrides applies --base-url and --card over file and env values
func flagOverrides(c *config.Config) {
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if cardID != "" {
		c.CardID = cardID
	}
}

// openService wires the grade store client and, when configured, the
// mutation journal. The returned func releases the journal.
func openService() (*portfolio.Service, func(), error) {
	client, err := gradestore.NewClient(cfg.BaseURL, cfg.CardID,
		gradestore.WithTimeout(cfg.RequestTimeout),
		gradestore.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	var opts []portfolio.ServiceOption
	cleanup := func() {}
	if cfg.JournalPath != "" {
		db, err := journal.Open(cfg.JournalPath)
		if err != nil {
			logger.Warn("mutation journal unavailable", zap.String("path", cfg.JournalPath), zap.Error(err))
		} else {
			opts = append(opts, portfolio.WithRecorder(db))
			cleanup = func() { db.Close() }
		}
	}

	return portfolio.NewService(client, logger, opts...), cleanup, nil
}
