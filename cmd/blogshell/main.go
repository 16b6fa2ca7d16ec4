// Command blogshell serves a brandable blog and provides content tooling.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "blogshell",
	Short: "blogshell - a brandable blog front end built with Go, Echo, and templ",
	Long: `blogshell serves a branded blog from a SQL content store or a directory of
fixture files. Branding comes from environment variables and a brand config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blogshell version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blogshell %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./blogshell.yaml)")
	rootCmd.AddCommand(serveCmd, renderCmd, importCmd, newCmd, versionCmd)
}

// initializeConfig loads .env into the process environment and then lets
// viper read an optional config file. Environment variables override the
// file; flags override both.
func initializeConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	v.SetDefault("addr", ":3000")
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("static_dir", "public")
	v.SetDefault("database_driver", "mysql")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("blogshell")
		v.SetConfigType("yaml")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
