package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/presenter"
	"github.com/smith-cop/skills-registry/pkg/registry"
	"github.com/smith-cop/skills-registry/pkg/validate"
)

type ListConfig struct {
	Category   string
	Filter     string
	JSONOutput bool
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		Category:   "",
		Filter:     "",
		JSONOutput: false,
	}
}

type ListEntry struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Valid       bool   `json:"valid"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugins in the registry",
	Long: `List all discovered plugins with their category, path, validity, and
description.

Examples:
  skillreg list
  skillreg list --category training
  skillreg list --filter 'batch-*'
  skillreg list --json`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		runList(config)
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().StringP("category", "c", defaults.Category, "Only list plugins in this category")
	listCmd.Flags().StringP("filter", "f", defaults.Filter, "Only list plugins whose name matches this glob pattern")
	listCmd.Flags().Bool("json", defaults.JSONOutput, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if category, err := cmd.Flags().GetString("category"); err == nil {
		config.Category = category
	}
	if filter, err := cmd.Flags().GetString("filter"); err == nil {
		config.Filter = filter
	}
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}
	return config
}

func runList(config *ListConfig) {
	var nameGlob glob.Glob
	if config.Filter != "" {
		compiled, err := glob.Compile(config.Filter)
		if err != nil {
			presenter.Error(err, "Invalid filter pattern")
			os.Exit(1)
		}
		nameGlob = compiled
	}

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

	var entries []ListEntry
	for _, result := range report.Results {
		plugin := result.Plugin
		if config.Category != "" && plugin.Category != config.Category {
			continue
		}
		if nameGlob != nil && !nameGlob.Match(plugin.Name()) {
			continue
		}

		entry := ListEntry{
			Name:     plugin.Name(),
			Category: plugin.Category,
			Path:     plugin.RelPath,
			Valid:    result.OK(),
		}
		if plugin.Manifest != nil {
			entry.Description = plugin.Manifest.Description
		}
		entries = append(entries, entry)
	}

	if config.JSONOutput {
		if entries == nil {
			entries = []ListEntry{}
		}
		encoded, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode plugin list")
			os.Exit(1)
		}
		fmt.Println(string(encoded))
		return
	}

	if len(entries) == 0 {
		presenter.Info("No plugins found")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tVALID\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t--------\t-----\t-----------")

	for _, entry := range entries {
		description := entry.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", entry.Name, entry.Category, entry.Valid, description)
	}
	tw.Flush()
}
