package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the analyzer over REST.

POST /analyze works without a database. Storing and listing analyses needs
DATABASE_URL (or --db-url); the table is created on startup.`,
	RunE: runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveDatabase   string
	servePatterns   string
	serveVerbose    bool
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT or 8080)")
	serveCmd.Flags().StringVar(&serveDatabase, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&servePatterns, "patterns", "", "Path to a pattern library YAML file")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabase
	}
	if cmd.Flags().Changed("patterns") {
		cfg.PatternsFile = servePatterns
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Config{})
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := newLogger(cfg.Verbose)
	lib, err := loadLibrary(cfg.PatternsFile)
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Port:      cfg.Port,
		Engine:    analysis.New(lib),
		Logger:    logger,
		RateLimit: ratelimit.LoadConfig(),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		srvCfg.Store = database
		logger.Info("analysis storage enabled")
	} else {
		logger.Warn("DATABASE_URL not set; only POST /analyze and POST /suggest are available")
	}

	return server.New(srvCfg).Start(ctx)
}
