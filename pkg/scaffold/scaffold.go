// Package scaffold creates new plugin directories from embedded templates so
// contributors start from a skeleton that already passes validation: a
// populated plugin.json and a SKILL.md carrying every required section.
package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

var (
	//go:embed templates/plugin.json.tmpl
	manifestTemplate string

	//go:embed templates/SKILL.md.tmpl
	skillTemplate string
)

// namePattern constrains category and plugin names to lowercase slugs so
// generated paths stay portable and URL-safe.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DefaultDescription seeds the manifest and skill frontmatter when the
// contributor does not supply one. Non-empty so a fresh plugin validates.
const DefaultDescription = "TODO: describe what this skill covers and when to apply it"

// Options configures a new plugin.
type Options struct {
	Category    string
	Name        string
	Description string
	AuthorName  string
	AuthorEmail string
}

// Create scaffolds a plugin under <root>/<category>/<name>/ and returns the
// plugin directory. It refuses to touch an existing plugin directory.
func Create(root string, opts Options) (string, error) {
	if !namePattern.MatchString(opts.Category) {
		return "", errors.Errorf("invalid category '%s': use lowercase letters, digits and hyphens", opts.Category)
	}
	if !namePattern.MatchString(opts.Name) {
		return "", errors.Errorf("invalid plugin name '%s': use lowercase letters, digits and hyphens", opts.Name)
	}
	if opts.Description == "" {
		opts.Description = DefaultDescription
	}

	pluginDir := filepath.Join(root, opts.Category, opts.Name)
	if _, err := os.Stat(pluginDir); err == nil {
		return "", errors.Errorf("plugin directory %s already exists", pluginDir)
	}

	manifest, err := render("plugin.json", manifestTemplate, opts)
	if err != nil {
		return "", err
	}

	skill, err := render("SKILL.md", skillTemplate, opts)
	if err != nil {
		return "", err
	}

	manifestDir := filepath.Join(pluginDir, ".claude-plugin")
	if err := os.MkdirAll(manifestDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create plugin directory")
	}

	skillDir := filepath.Join(pluginDir, "skills", opts.Name)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create skills directory")
	}

	if err := os.WriteFile(filepath.Join(manifestDir, "plugin.json"), manifest, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write plugin.json")
	}

	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), skill, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write SKILL.md")
	}

	return pluginDir, nil
}

// Title renders the plugin name as a document title, e.g.
// "batch-size-sweep" becomes "Batch Size Sweep".
func (o Options) Title() string {
	words := strings.Split(o.Name, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func render(name, text string, opts Options) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"json": func(s string) (string, error) {
			encoded, err := json.Marshal(s)
			if err != nil {
				return "", err
			}
			return string(encoded), nil
		},
	}).Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s template", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", name)
	}

	return buf.Bytes(), nil
}
