// Package registry models the on-disk layout of a skills registry: a tree of
// plugin directories (plugins/<category>/<plugin>/), each carrying a
// .claude-plugin/plugin.json manifest and one or more skills/*/SKILL.md
// documents. The package only reads the tree; contributors own the files.
package registry

// Author identifies the contributor that owns a plugin.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Manifest is the decoded .claude-plugin/plugin.json of a single plugin.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description"`
	Author      Author `json:"author"`
	Category    string `json:"category"`
	Skills      string `json:"skills,omitempty"` // relative path to the skills directory
}

// DefaultVersion is assumed when a manifest omits the version field.
const DefaultVersion = "1.0.0"

// DefaultSkillsPath is assumed when a manifest omits the skills field.
const DefaultSkillsPath = "./skills"

// EffectiveVersion returns the manifest version, falling back to DefaultVersion.
func (m *Manifest) EffectiveVersion() string {
	if m.Version == "" {
		return DefaultVersion
	}
	return m.Version
}

// EffectiveSkillsPath returns the manifest skills path, falling back to DefaultSkillsPath.
func (m *Manifest) EffectiveSkillsPath() string {
	if m.Skills == "" {
		return DefaultSkillsPath
	}
	return m.Skills
}

// Plugin is a discovered plugin directory. Manifest is nil when the manifest
// file is missing or unparseable; the load failure is kept in ManifestErr so
// callers can report it instead of losing the plugin from the result set.
type Plugin struct {
	DirName     string    // plugin directory name
	Category    string    // category directory name
	Dir         string    // absolute path to the plugin directory
	RelPath     string    // registry-relative path, e.g. "plugins/training/batch-size-sweep"
	Manifest    *Manifest
	ManifestErr error
	SkillsDir   string   // resolved skills directory (empty when manifest failed to load)
	SkillFiles  []string // discovered SKILL.md paths, sorted
}

// Name returns the manifest name when available, otherwise the directory name.
func (p *Plugin) Name() string {
	if p.Manifest != nil && p.Manifest.Name != "" {
		return p.Manifest.Name
	}
	return p.DirName
}
