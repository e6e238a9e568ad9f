package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smith-cop/skills-registry/pkg/registry"
	"github.com/smith-cop/skills-registry/pkg/validate"
)

func TestCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir, err := Create(root, Options{
		Category:    "training",
		Name:        "batch-size-sweep",
		Description: "When tuning batch size for large training runs",
		AuthorName:  "Test Author",
		AuthorEmail: "author@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "training", "batch-size-sweep"), pluginDir)

	manifest, err := registry.LoadManifest(filepath.Join(pluginDir, ".claude-plugin", "plugin.json"))
	require.NoError(t, err)
	assert.Equal(t, "batch-size-sweep", manifest.Name)
	assert.Equal(t, "When tuning batch size for large training runs", manifest.Description)
	assert.Equal(t, "training", manifest.Category)
	assert.Equal(t, "Test Author", manifest.Author.Name)

	doc, err := registry.LoadSkillDoc(filepath.Join(pluginDir, "skills", "batch-size-sweep", "SKILL.md"))
	require.NoError(t, err)
	assert.Equal(t, "batch-size-sweep", doc.Name)
	assert.Empty(t, doc.MissingSections())
	assert.Contains(t, doc.Body, "# Batch Size Sweep")
}

func TestCreatePassesValidation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	_, err := Create(root, Options{Category: "general", Name: "ci-caching"})
	require.NoError(t, err)

	discovery, err := registry.NewDiscovery(registry.WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 1)

	report := validate.Run(plugins)
	assert.True(t, report.OK(), "issues: %v", report.Issues())
}

func TestCreateDefaultDescription(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir, err := Create(root, Options{Category: "general", Name: "defaults"})
	require.NoError(t, err)

	manifest, err := registry.LoadManifest(filepath.Join(pluginDir, ".claude-plugin", "plugin.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDescription, manifest.Description)
}

func TestCreateRefusesOverwrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	_, err := Create(root, Options{Category: "general", Name: "taken"})
	require.NoError(t, err)

	_, err = Create(root, Options{Category: "general", Name: "taken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateRejectsBadNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	_, err := Create(root, Options{Category: "Training", Name: "ok"})
	assert.Error(t, err)

	_, err = Create(root, Options{Category: "training", Name: "Not OK"})
	assert.Error(t, err)

	_, err = Create(root, Options{Category: "training", Name: "../escape"})
	assert.Error(t, err)

	// Nothing should have been created
	_, statErr := os.Stat(filepath.Join(root, "training"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Batch Size Sweep", Options{Name: "batch-size-sweep"}.Title())
	assert.Equal(t, "Single", Options{Name: "single"}.Title())
}

func TestCreateEscapesDescription(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir, err := Create(root, Options{
		Category:    "general",
		Name:        "quoting",
		Description: `Use when output contains "quotes" or colons: like this`,
	})
	require.NoError(t, err)

	manifest, err := registry.LoadManifest(filepath.Join(pluginDir, ".claude-plugin", "plugin.json"))
	require.NoError(t, err)
	assert.Equal(t, `Use when output contains "quotes" or colons: like this`, manifest.Description)

	doc, err := registry.LoadSkillDoc(filepath.Join(pluginDir, "skills", "quoting", "SKILL.md"))
	require.NoError(t, err)
	assert.Equal(t, `Use when output contains "quotes" or colons: like this`, doc.Description)
}
