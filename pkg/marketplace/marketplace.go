// Package marketplace builds the aggregate marketplace.json catalog from the
// set of valid plugins. The catalog is derived data: it is rebuilt wholesale
// on every run and carries no state of its own. Output is deterministic so
// regenerating with unchanged inputs is byte-identical and diff-friendly.
package marketplace

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/smith-cop/skills-registry/pkg/registry"
)

// SchemaVersion identifies the catalog format.
const SchemaVersion = "1.0.0"

// DefaultOutputFile is the conventional catalog location at the registry root.
const DefaultOutputFile = "marketplace.json"

// Entry is the catalog summary of one plugin.
type Entry struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Author      registry.Author `json:"author"`
	Category    string          `json:"category"`
	Path        string          `json:"path"`
	Skills      []string        `json:"skills"`
}

// Index is the full catalog document.
type Index struct {
	Version    string  `json:"version"`
	Repository string  `json:"repository,omitempty"`
	Plugins    []Entry `json:"plugins"`
}

// Build assembles the catalog from plugins that passed validation. Entries
// are ordered lexicographically by name, ties broken by path; skill names
// within an entry are sorted. Plugins must carry a loaded manifest.
func Build(plugins []*registry.Plugin, repository string) (*Index, error) {
	index := &Index{
		Version:    SchemaVersion,
		Repository: repository,
		Plugins:    []Entry{},
	}

	for _, plugin := range plugins {
		entry, err := buildEntry(plugin)
		if err != nil {
			return nil, err
		}
		index.Plugins = append(index.Plugins, entry)
	}

	sort.Slice(index.Plugins, func(i, j int) bool {
		a, b := index.Plugins[i], index.Plugins[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})

	return index, nil
}

func buildEntry(plugin *registry.Plugin) (Entry, error) {
	if plugin.Manifest == nil {
		return Entry{}, errors.Errorf("plugin %s has no manifest", plugin.RelPath)
	}

	skills := make([]string, 0, len(plugin.SkillFiles))
	for _, path := range plugin.SkillFiles {
		doc, err := registry.LoadSkillDoc(path)
		if err != nil {
			return Entry{}, errors.Wrapf(err, "failed to load skill for plugin %s", plugin.RelPath)
		}
		skills = append(skills, doc.Name)
	}
	sort.Strings(skills)

	return Entry{
		Name:        plugin.Manifest.Name,
		Version:     plugin.Manifest.EffectiveVersion(),
		Description: plugin.Manifest.Description,
		Author:      plugin.Manifest.Author,
		Category:    plugin.Category,
		Path:        plugin.RelPath,
		Skills:      skills,
	}, nil
}

// Encode renders the catalog as two-space indented JSON with a trailing
// newline.
func (idx *Index) Encode() ([]byte, error) {
	content, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode marketplace index")
	}
	return append(content, '\n'), nil
}

// WriteFile overwrites the catalog file at path in full.
func (idx *Index) WriteFile(path string) error {
	content, err := idx.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Check reports whether the catalog file at path matches the index. A missing
// file counts as stale.
func (idx *Index) Check(path string) (bool, error) {
	want, err := idx.Encode()
	if err != nil {
		return false, err
	}

	got, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to read %s", path)
	}

	return bytes.Equal(got, want), nil
}
