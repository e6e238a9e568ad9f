package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSkillContent = `---
name: batch-size-sweep
description: Sweep batch sizes to find the largest stable setting
---

# Batch Size Sweep

## Goal

Find the largest batch size that trains stably.

## Environment

- 8x A100

## What Worked

Doubling until loss spikes, then backing off one step.

## Failed Attempts

| Attempt | What was tried | Why it failed |
| ------- | -------------- | ------------- |
| 1       | bs=4096        | loss diverged |

## Final Parameters

` + "```yaml\nbatch_size: 2048\n```\n"

func writePlugin(t *testing.T, root, category, name, manifest string) string {
	t.Helper()

	pluginDir := filepath.Join(root, category, name)
	manifestDir := filepath.Join(pluginDir, ".claude-plugin")
	require.NoError(t, os.MkdirAll(manifestDir, 0o755))

	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(manifestDir, "plugin.json"), []byte(manifest), 0o644))
	}

	return pluginDir
}

func writeSkill(t *testing.T, pluginDir, skillName, content string) {
	t.Helper()

	skillDir := filepath.Join(pluginDir, "skills", skillName)
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0o644))
}

func TestNewDiscovery(t *testing.T) {
	t.Run("default root", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.Equal(t, DefaultRoot, discovery.Root())
	})

	t.Run("custom root", func(t *testing.T) {
		discovery, err := NewDiscovery(WithRoot("/tmp/plugins"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/plugins", discovery.Root())
	})
}

func TestDiscoverPlugins(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir := writePlugin(t, root, "training", "batch-size-sweep", `{
  "name": "batch-size-sweep",
  "description": "Sweep batch sizes to find the largest stable setting",
  "category": "training"
}`)
	writeSkill(t, pluginDir, "batch-size-sweep", validSkillContent)

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 1)

	plugin := plugins[0]
	assert.Equal(t, "batch-size-sweep", plugin.DirName)
	assert.Equal(t, "training", plugin.Category)
	assert.Equal(t, "plugins/training/batch-size-sweep", plugin.RelPath)
	require.NotNil(t, plugin.Manifest)
	assert.Equal(t, "batch-size-sweep", plugin.Manifest.Name)
	assert.NoError(t, plugin.ManifestErr)
	require.Len(t, plugin.SkillFiles, 1)
	assert.Equal(t, filepath.Join(pluginDir, "skills", "batch-size-sweep", "SKILL.md"), plugin.SkillFiles[0])
}

func TestDiscoverPluginsMissingRoot(t *testing.T) {
	discovery, err := NewDiscovery(WithRoot(filepath.Join(t.TempDir(), "does-not-exist")))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestDiscoverPluginsIgnoresNonPluginDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	// Directory without .claude-plugin is not a plugin
	require.NoError(t, os.MkdirAll(filepath.Join(root, "training", "not-a-plugin"), 0o755))

	// Stray file at the category level
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0o644))

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestDiscoverPluginsKeepsBrokenManifests(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	writePlugin(t, root, "training", "no-manifest", "")
	writePlugin(t, root, "training", "bad-json", `{"name": `)

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 2)

	for _, plugin := range plugins {
		assert.Nil(t, plugin.Manifest)
		assert.Error(t, plugin.ManifestErr)
	}
}

func TestDiscoverPluginsSortedByPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	writePlugin(t, root, "training", "zeta", `{"name": "zeta", "description": "d", "category": "training"}`)
	writePlugin(t, root, "general", "alpha", `{"name": "alpha", "description": "d", "category": "general"}`)

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 2)
	assert.Equal(t, "plugins/general/alpha", plugins[0].RelPath)
	assert.Equal(t, "plugins/training/zeta", plugins[1].RelPath)
}

func TestFindPlugin(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir := writePlugin(t, root, "training", "batch-size-sweep", `{
  "name": "batch-size-sweep",
  "description": "Sweep batch sizes",
  "category": "training"
}`)
	writeSkill(t, pluginDir, "batch-size-sweep", validSkillContent)

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugin, err := discovery.FindPlugin("batch-size-sweep")
	require.NoError(t, err)
	assert.Equal(t, "batch-size-sweep", plugin.Manifest.Name)

	_, err = discovery.FindPlugin("missing")
	assert.Error(t, err)
}

func TestLoadManifestDefaults(t *testing.T) {
	manifest := &Manifest{}
	assert.Equal(t, DefaultVersion, manifest.EffectiveVersion())
	assert.Equal(t, DefaultSkillsPath, manifest.EffectiveSkillsPath())

	manifest = &Manifest{Version: "2.0.0", Skills: "./capabilities"}
	assert.Equal(t, "2.0.0", manifest.EffectiveVersion())
	assert.Equal(t, "./capabilities", manifest.EffectiveSkillsPath())
}

func TestNestedSkillFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plugins")

	pluginDir := writePlugin(t, root, "training", "multi", `{
  "name": "multi",
  "description": "Plugin with nested skills",
  "category": "training"
}`)
	writeSkill(t, pluginDir, "first", validSkillContent)
	writeSkill(t, pluginDir, filepath.Join("nested", "second"), validSkillContent)

	discovery, err := NewDiscovery(WithRoot(root))
	require.NoError(t, err)

	plugins, err := discovery.DiscoverPlugins()
	require.NoError(t, err)
	require.Len(t, plugins, 1)
	assert.Len(t, plugins[0].SkillFiles, 2)
}
