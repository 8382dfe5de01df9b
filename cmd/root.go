// Package cmd implements the command-line interface for rommap.
// It provides the root command and subcommands for scraping, normalizing,
// and querying ROM-name mapping tables.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdlookup "github.com/jonesrussell/rommap/cmd/lookup"
	cmdnormalize "github.com/jonesrussell/rommap/cmd/normalize"
	cmdscrape "github.com/jonesrussell/rommap/cmd/scrape"
	cmdsystems "github.com/jonesrussell/rommap/cmd/systems"
	"github.com/jonesrussell/rommap/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the rommap CLI.
	rootCmd = &cobra.Command{
		Use:   "rommap",
		Short: "Extract and normalize CN/EN ROM-name mapping tables",
		Long: `rommap extracts ROM-name mapping tables (English name, Chinese name,
source identifier) from per-platform web pages and JSON endpoints, then
normalizes them into a single stable record schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rommap version %s\n", viper.GetString("app.version"))
		},
	})

	rootCmd.AddCommand(cmdsystems.NewListCommand())
	rootCmd.AddCommand(cmdscrape.Command())
	rootCmd.AddCommand(cmdnormalize.Command())
	rootCmd.AddCommand(cmdlookup.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file values.
	viper.SetEnvPrefix("rommap")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults()

	// Config file is optional: defaults and environment variables suffice.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":        {"APP_ENV"},
		"app.debug":              {"APP_DEBUG"},
		"logger.level":           {"LOG_LEVEL"},
		"logger.encoding":        {"LOG_FORMAT"},
		"scraper.base_url":       {"ROMMAP_BASE_URL"},
		"scraper.out_dir":        {"ROMMAP_OUT_DIR"},
		"scraper.normalized_dir": {"ROMMAP_NORMALIZED_DIR"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based
// on environment and the debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}
