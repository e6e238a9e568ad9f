package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smith-cop/skills-registry/pkg/presenter"
	"github.com/smith-cop/skills-registry/pkg/scaffold"
)

type NewConfig struct {
	Description string
	AuthorName  string
	AuthorEmail string
}

func NewNewConfig() *NewConfig {
	return &NewConfig{
		Description: "",
		AuthorName:  "",
		AuthorEmail: "",
	}
}

var newCmd = &cobra.Command{
	Use:   "new <category>/<plugin-name>",
	Short: "Scaffold a new plugin",
	Long: `Scaffold a new plugin directory with a plugin.json manifest and a SKILL.md
skeleton carrying every required section. The result passes validation as-is;
fill in the sections before opening a pull request.

Examples:
  skillreg new training/batch-size-sweep
  skillreg new general/ci-caching --description "When CI cache tuning is needed"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getNewConfigFromFlags(cmd)
		runNew(args[0], config)
	},
}

func init() {
	defaults := NewNewConfig()
	newCmd.Flags().StringP("description", "d", defaults.Description, "Plugin description, stating when the skill applies")
	newCmd.Flags().String("author-name", defaults.AuthorName, "Author name for the manifest")
	newCmd.Flags().String("author-email", defaults.AuthorEmail, "Author email for the manifest")
	rootCmd.AddCommand(newCmd)
}

func getNewConfigFromFlags(cmd *cobra.Command) *NewConfig {
	config := NewNewConfig()
	if description, err := cmd.Flags().GetString("description"); err == nil {
		config.Description = description
	}
	if authorName, err := cmd.Flags().GetString("author-name"); err == nil {
		config.AuthorName = authorName
	}
	if authorEmail, err := cmd.Flags().GetString("author-email"); err == nil {
		config.AuthorEmail = authorEmail
	}
	return config
}

func runNew(slug string, config *NewConfig) {
	category, name, ok := strings.Cut(slug, "/")
	if !ok || category == "" || name == "" {
		presenter.Error(errors.Errorf("invalid plugin path '%s'", slug), "Expected <category>/<plugin-name>")
		os.Exit(1)
	}

	pluginDir, err := scaffold.Create(viper.GetString("plugins_dir"), scaffold.Options{
		Category:    category,
		Name:        name,
		Description: config.Description,
		AuthorName:  config.AuthorName,
		AuthorEmail: config.AuthorEmail,
	})
	if err != nil {
		presenter.Error(err, "Failed to scaffold plugin")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Created plugin '%s' at %s", name, pluginDir))
	presenter.Info("Fill in the SKILL.md sections, then run 'skillreg validate'")
}
