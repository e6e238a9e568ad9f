package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/logger"
	"github.com/smith-cop/skills-registry/pkg/presenter"
	"github.com/smith-cop/skills-registry/pkg/registry"
	"github.com/smith-cop/skills-registry/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every plugin in the registry",
	Long: `Validate every plugin under the plugins directory: manifest presence and
shape, required fields, SKILL.md sections, and plugin name uniqueness.

All problems across all plugins are collected and reported in one run. The
exit status is non-zero when any plugin fails.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) {
	ctx := cmd.Context()
	pluginsDir := viper.GetString("plugins_dir")

	discovery, err := registry.NewDiscovery(registry.WithRoot(pluginsDir))
	if err != nil {
		presenter.Error(err, "Failed to initialize plugin discovery")
		os.Exit(1)
	}

	plugins, err := discovery.DiscoverPlugins()
	if err != nil {
		presenter.Error(err, "Failed to discover plugins")
		os.Exit(1)
	}

	logger.G(ctx).WithField("count", len(plugins)).Debug("discovered plugins")

	report := validate.Run(plugins)

	for _, result := range report.Results {
		if result.OK() {
			presenter.Success(fmt.Sprintf("OK %s", result.Plugin.DirName))
			continue
		}

		presenter.Info(fmt.Sprintf("FAIL %s", result.Plugin.DirName))
		for _, issue := range result.Issues {
			presenter.Info(fmt.Sprintf("  - %s", issue))
		}
	}

	presenter.Separator()
	presenter.Info(fmt.Sprintf("Validated %d plugins", len(plugins)))

	if issues := report.Issues(); len(issues) > 0 {
		presenter.Error(fmt.Errorf("%d issue(s) found", len(issues)), "Validation failed")
		os.Exit(1)
	}

	presenter.Success("All plugins valid")
}
