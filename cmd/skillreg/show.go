package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/presenter"
	"github.com/smith-cop/skills-registry/pkg/registry"
)

var showCmd = &cobra.Command{
	Use:   "show <plugin-name>",
	Short: "Show a plugin's manifest and skill documents",
	Long: `Show the manifest fields and skill documents of a plugin, identified by
its manifest name.

Examples:
  skillreg show batch-size-sweep`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runShow(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(name string) {
	discovery, err := registry.NewDiscovery(registry.WithRoot(viper.GetString("plugins_dir")))
	if err != nil {
		presenter.Error(err, "Failed to initialize plugin discovery")
		os.Exit(1)
	}

	plugin, err := discovery.FindPlugin(name)
	if err != nil {
		presenter.Error(err, "Plugin not found")
		os.Exit(1)
	}

	manifest := plugin.Manifest

	presenter.Section(manifest.Name)
	presenter.Info(fmt.Sprintf("Version:     %s", manifest.EffectiveVersion()))
	presenter.Info(fmt.Sprintf("Category:    %s", plugin.Category))
	presenter.Info(fmt.Sprintf("Path:        %s", plugin.RelPath))
	presenter.Info(fmt.Sprintf("Description: %s", manifest.Description))
	if manifest.Author.Name != "" {
		author := manifest.Author.Name
		if manifest.Author.Email != "" {
			author = fmt.Sprintf("%s <%s>", author, manifest.Author.Email)
		}
		presenter.Info(fmt.Sprintf("Author:      %s", author))
	}

	for _, path := range plugin.SkillFiles {
		doc, err := registry.LoadSkillDoc(path)
		if err != nil {
			presenter.Warning(fmt.Sprintf("Unreadable skill document %s: %s", path, err))
			continue
		}

		presenter.Separator()
		presenter.Section(fmt.Sprintf("Skill: %s", doc.Name))
		presenter.Info(doc.Description)
		if len(doc.Headings) > 0 {
			presenter.Info("")
			presenter.Info("Sections:")
			for _, heading := range doc.Headings {
				presenter.Info(fmt.Sprintf("  - %s", heading))
			}
		}
	}
}
