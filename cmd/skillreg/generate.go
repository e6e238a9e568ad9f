package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/marketplace"
	"github.com/smith-cop/skills-registry/pkg/presenter"
	"github.com/smith-cop/skills-registry/pkg/registry"
	"github.com/smith-cop/skills-registry/pkg/validate"
)

type GenerateConfig struct {
	Output string
	Check  bool
}

func NewGenerateConfig() *GenerateConfig {
	return &GenerateConfig{
		Output: marketplace.DefaultOutputFile,
		Check:  false,
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the marketplace catalog",
	Long: `Generate marketplace.json from all plugins that pass validation. Invalid
plugins are skipped with a warning. The output is rewritten in full on every
run and is byte-identical across runs with unchanged inputs.

With --check, no file is written; the command exits non-zero when the catalog
on disk is stale.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getGenerateConfigFromFlags(cmd)
		runGenerate(config)
	},
}

func init() {
	defaults := NewGenerateConfig()
	generateCmd.Flags().StringP("output", "o", defaults.Output, "Path of the catalog file to write")
	generateCmd.Flags().Bool("check", defaults.Check, "Verify the catalog is up to date instead of writing it")
	rootCmd.AddCommand(generateCmd)
}

func getGenerateConfigFromFlags(cmd *cobra.Command) *GenerateConfig {
	config := NewGenerateConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	if check, err := cmd.Flags().GetBool("check"); err == nil {
		config.Check = check
	}
	return config
}

func runGenerate(config *GenerateConfig) {
	discovery, err := registry.NewDiscovery(registry.WithRoot(viper.GetString("plugins_dir")))
	if err != nil {
		presenter.Error(err, "Failed to initialize plugin discovery")
		os.Exit(1)
	}

	plugins, err := discovery.DiscoverPlugins()
	if err != nil {
		presenter.Error(err, "Failed to discover plugins")
		os.Exit(1)
	}

	report := validate.Run(plugins)
	for _, result := range report.Results {
		if !result.OK() {
			presenter.Warning(fmt.Sprintf("Skipping invalid plugin %s", result.Plugin.RelPath))
		}
	}

	index, err := marketplace.Build(report.Valid(), viper.GetString("repository"))
	if err != nil {
		presenter.Error(err, "Failed to build marketplace index")
		os.Exit(1)
	}

	if config.Check {
		upToDate, err := index.Check(config.Output)
		if err != nil {
			presenter.Error(err, "Failed to check marketplace file")
			os.Exit(1)
		}
		if !upToDate {
			presenter.Error(fmt.Errorf("%s is stale", config.Output), "Run 'skillreg generate' and commit the result")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("%s is up to date", config.Output))
		return
	}

	if err := index.WriteFile(config.Output); err != nil {
		presenter.Error(err, "Failed to write marketplace file")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Generated %s with %d plugins", config.Output, len(index.Plugins)))
}
