package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmaresco/cellarscan/internal/common"
)

var (
	cfg      *common.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cellarscan",
	Short: "Wine label extraction service",
	Long:  "Reads a wine label photo, extracts structured fields via OCR and an LLM, and matches them against the owner's cellar.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := common.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
			return fmt.Errorf("parse log level %q: %w", logLevel, err)
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
