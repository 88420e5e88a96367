package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Izazzubayer/Pathly/internal/config"
	"github.com/Izazzubayer/Pathly/internal/database"
	"github.com/Izazzubayer/Pathly/internal/logger"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	cfg        *config.Config
	log        *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "pathly",
	Short:         "Plan walkable day-by-day travel itineraries around the places you must see",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("config") {
			if p, err := database.GetConfigFilePath(); err == nil {
				configPath = p
			}
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if cmd.Flags().Changed("data-dir") {
			cfg.Data.Dir = dataDir
		}
		if cfg.Data.Dir == "" {
			dir, err := database.GetAppDir()
			if err != nil {
				return err
			}
			cfg.Data.Dir = dir
		}

		log, err = logger.New(cfg.Log.Mode, verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default ~/.pathly/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the Pathly database (default ~/.pathly)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}
