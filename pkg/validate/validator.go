package validate

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
	"github.com/smith-cop/skills-registry/pkg/registry"
)

// Run validates every discovered plugin and returns the accumulated report.
// Plugins are checked independently; uniqueness is checked across the whole
// set afterwards so a duplicate is reported even when both plugins are
// otherwise valid.
func Run(plugins []*registry.Plugin) *Report {
	report := &Report{}

	for _, plugin := range plugins {
		report.Results = append(report.Results, checkPlugin(plugin))
	}

	checkUniqueness(report)

	return report
}

// checkPlugin validates a single plugin. A missing or unparseable manifest
// short-circuits the remaining checks: there is nothing meaningful to verify
// without one, and the contributor should see exactly one error for it.
func checkPlugin(plugin *registry.Plugin) *Result {
	result := &Result{Plugin: plugin}

	if plugin.Manifest == nil {
		result.Issues = append(result.Issues, manifestIssue(plugin))
		return result
	}

	checkManifestFields(plugin, result)
	checkSkills(plugin, result)

	return result
}

func manifestIssue(plugin *registry.Plugin) Issue {
	if errors.Is(plugin.ManifestErr, fs.ErrNotExist) {
		return Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindStructural,
			Message: "missing .claude-plugin/plugin.json",
		}
	}
	return Issue{
		Plugin:  plugin.RelPath,
		Kind:    KindStructural,
		Message: plugin.ManifestErr.Error(),
	}
}

func checkManifestFields(plugin *registry.Plugin, result *Result) {
	manifest := plugin.Manifest

	required := []struct {
		field string
		value string
	}{
		{"name", manifest.Name},
		{"description", manifest.Description},
		{"category", manifest.Category},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			result.Issues = append(result.Issues, Issue{
				Plugin:  plugin.RelPath,
				Kind:    KindContent,
				Field:   f.field,
				Message: fmt.Sprintf("missing required field '%s'", f.field),
			})
		}
	}

	if manifest.Category != "" && manifest.Category != plugin.Category {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindContent,
			Field:   "category",
			Message: fmt.Sprintf("category '%s' does not match directory '%s'", manifest.Category, plugin.Category),
		})
	}
}

func checkSkills(plugin *registry.Plugin, result *Result) {
	if len(plugin.SkillFiles) == 0 {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindStructural,
			Message: fmt.Sprintf("no SKILL.md files found under %s", plugin.Manifest.EffectiveSkillsPath()),
		})
		return
	}

	for _, path := range plugin.SkillFiles {
		checkSkillDoc(plugin, path, result)
	}
}

func checkSkillDoc(plugin *registry.Plugin, path string, result *Result) {
	doc, err := registry.LoadSkillDoc(path)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindStructural,
			Message: err.Error(),
		})
		return
	}

	if doc.Name == "" {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindContent,
			Field:   "name",
			Message: fmt.Sprintf("%s: missing frontmatter field 'name'", path),
		})
	}
	if doc.Description == "" {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindContent,
			Field:   "description",
			Message: fmt.Sprintf("%s: missing frontmatter field 'description'", path),
		})
	}

	for _, section := range doc.MissingSections() {
		result.Issues = append(result.Issues, Issue{
			Plugin:  plugin.RelPath,
			Kind:    KindContent,
			Field:   section,
			Message: fmt.Sprintf("%s: missing required section '%s'", path, section),
		})
	}
}

// checkUniqueness reports a duplicate manifest name once, on the later
// occurrence in discovery order, naming both locations.
func checkUniqueness(report *Report) {
	seen := make(map[string]*registry.Plugin)

	for _, result := range report.Results {
		plugin := result.Plugin
		if plugin.Manifest == nil || plugin.Manifest.Name == "" {
			continue
		}

		name := plugin.Manifest.Name
		if first, exists := seen[name]; exists {
			result.Issues = append(result.Issues, Issue{
				Plugin:  plugin.RelPath,
				Kind:    KindUniqueness,
				Field:   "name",
				Message: fmt.Sprintf("duplicate plugin name '%s' in %s and %s", name, first.RelPath, plugin.RelPath),
			})
			continue
		}
		seen[name] = plugin
	}
}
