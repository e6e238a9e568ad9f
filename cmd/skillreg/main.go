package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/logger"
	"github.com/smith-cop/skills-registry/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLREG")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./.skillreg")
	viper.AddConfigPath("$HOME/.skillreg")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillreg",
	Short: "Maintain a skills registry of experiment plugins",
	Long: `skillreg validates skill plugins, generates the marketplace catalog,
and scaffolds new plugins in a skills registry repository.

A registry keeps plugins under plugins/<category>/<plugin-name>/, each with a
.claude-plugin/plugin.json manifest and skills/*/SKILL.md documents.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			fmt.Fprintf(os.Stderr, "invalid log level: %s\n", err)
			os.Exit(1)
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// bindFlags binds flags to their viper keys so values resolve from flag,
// SKILLREG_* environment variable, or config file, in that order.
func bindFlags(flags *pflag.FlagSet, names map[string]string) {
	for flagName, key := range names {
		viper.BindPFlag(key, flags.Lookup(flagName))
	}
}

func main() {
	rootCmd.PersistentFlags().String("plugins-dir", "plugins", "Path to the plugins root directory")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"plugins-dir": "plugins_dir",
		"log-level":   "log_level",
		"log-format":  "log_format",
		"quiet":       "quiet",
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
