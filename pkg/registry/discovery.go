package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

const (
	manifestDirName  = ".claude-plugin"
	manifestFileName = "plugin.json"
	skillFileName    = "SKILL.md"
)

// DefaultRoot is the conventional plugins directory at the registry root.
const DefaultRoot = "plugins"

// Discovery walks a plugins root directory and loads the plugins it finds.
type Discovery struct {
	root string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithRoot sets a custom plugins root directory
func WithRoot(dir string) Option {
	return func(d *Discovery) error {
		d.root = dir
		return nil
	}
}

// NewDiscovery creates a new plugin discovery instance rooted at DefaultRoot
// unless overridden via options.
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{root: DefaultRoot}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Root returns the plugins root directory.
func (d *Discovery) Root() string {
	return d.root
}

// DiscoverPlugins finds all plugin directories under <root>/<category>/ and
// loads their manifests. A directory counts as a plugin when it contains a
// .claude-plugin subdirectory. Plugins whose manifest is missing or broken
// are still returned, with the failure recorded in ManifestErr.
//
// A missing root yields an empty result rather than an error so an empty
// registry validates and generates cleanly.
func (d *Discovery) DiscoverPlugins() ([]*Plugin, error) {
	categories, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read plugins root %s", d.root)
	}

	var plugins []*Plugin

	for _, category := range categories {
		if !category.IsDir() {
			continue
		}

		categoryDir := filepath.Join(d.root, category.Name())
		entries, err := os.ReadDir(categoryDir)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read category directory %s", categoryDir)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			pluginDir := filepath.Join(categoryDir, entry.Name())
			if info, err := os.Stat(filepath.Join(pluginDir, manifestDirName)); err != nil || !info.IsDir() {
				continue
			}

			plugins = append(plugins, d.loadPlugin(pluginDir, category.Name(), entry.Name()))
		}
	}

	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].RelPath < plugins[j].RelPath
	})

	return plugins, nil
}

// FindPlugin returns the discovered plugin whose manifest name matches.
func (d *Discovery) FindPlugin(name string) (*Plugin, error) {
	plugins, err := d.DiscoverPlugins()
	if err != nil {
		return nil, err
	}

	for _, plugin := range plugins {
		if plugin.Manifest != nil && plugin.Manifest.Name == name {
			return plugin, nil
		}
	}

	return nil, errors.Errorf("plugin '%s' not found", name)
}

func (d *Discovery) loadPlugin(dir, category, dirName string) *Plugin {
	plugin := &Plugin{
		DirName:  dirName,
		Category: category,
		Dir:      dir,
		RelPath:  filepath.ToSlash(filepath.Join(filepath.Base(d.root), category, dirName)),
	}

	manifest, err := LoadManifest(filepath.Join(dir, manifestDirName, manifestFileName))
	if err != nil {
		plugin.ManifestErr = err
		return plugin
	}

	plugin.Manifest = manifest
	plugin.SkillsDir = filepath.Join(dir, filepath.FromSlash(manifest.EffectiveSkillsPath()))
	plugin.SkillFiles = findSkillFiles(plugin.SkillsDir)

	return plugin
}

// LoadManifest reads and decodes a plugin.json file. The returned error wraps
// fs.ErrNotExist when the file is absent, which callers use to distinguish a
// missing manifest from a syntactically broken one.
func LoadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}

	var manifest Manifest
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON in manifest %s", path)
	}

	return &manifest, nil
}

// findSkillFiles returns all SKILL.md paths under dir, sorted for stable
// ordering. A missing or unreadable dir yields nil; the validator reports
// that as its own issue.
func findSkillFiles(dir string) []string {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", skillFileName))
	if err != nil {
		return nil
	}

	sort.Strings(matches)
	return matches
}
