package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Trequetrum/GloomhavenTools/internal/platform"
	"github.com/Trequetrum/GloomhavenTools/pkg/adapters/drive"
	"github.com/Trequetrum/GloomhavenTools/pkg/cache"
	"github.com/Trequetrum/GloomhavenTools/pkg/config"
)

var (
	verbose    bool
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gloomtools",
	Short: "A reactive cache over JSON documents stored in a remote drive",
	Long: `gloomtools keeps an in-memory, event-sourced cache of JSON documents
that live in a remote drive. It can discover, load, save, create and watch
documents from the command line.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the CLI may hold ${TOKEN}-style values the
		// config file expands.
		_ = godotenv.Load()

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
}

// newService builds a cache service from the CLI config file.
func newService() (*cache.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return platform.New(
		platform.WithLogger(slog.Default()),
		platform.WithDrive(drive.Config{
			BaseURL:       cfg.BaseURL,
			UploadBaseURL: cfg.UploadBaseURL,
			Token:         drive.StaticToken(cfg.Token),
			Logger:        slog.Default(),
		}),
	)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
