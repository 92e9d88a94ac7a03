package main

import (
	"fmt"
	"os"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:     "portfolio",
		Short:   "Building-in-public roadmap server",
		Long:    "Serves the public roadmap, weekly view and curriculum progress, plus the owner's admin API.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "storage driver: sqlite, postgres or json")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "rotate logs into this file")

	rootCmd.AddCommand(newServeCmd(&cfg))
	rootCmd.AddCommand(newCurriculumCmd(&cfg))
	rootCmd.AddCommand(newSeedCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
