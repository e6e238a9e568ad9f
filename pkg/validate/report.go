// Package validate checks a discovered plugin tree against the registry
// conventions: manifest shape, required fields, skill document sections, and
// name uniqueness. It accumulates every issue across every plugin instead of
// stopping at the first failure, so a contributor sees all problems in one
// run. Nothing on disk is modified.
package validate

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/smith-cop/skills-registry/pkg/registry"
)

// Kind classifies a validation issue.
type Kind string

const (
	// KindStructural covers missing or unparseable files.
	KindStructural Kind = "structural"
	// KindContent covers missing required fields or document sections.
	KindContent Kind = "content"
	// KindUniqueness covers duplicate plugin names across the tree.
	KindUniqueness Kind = "uniqueness"
)

// Issue is a single validation failure.
type Issue struct {
	Plugin  string // registry-relative plugin path
	Kind    Kind
	Field   string // offending manifest field or document section, if any
	Message string
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", i.Kind, i.Plugin, i.Message, i.Field)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Kind, i.Plugin, i.Message)
}

// Result is the validation outcome for one plugin.
type Result struct {
	Plugin *registry.Plugin
	Issues []Issue
}

// OK reports whether the plugin passed every check.
func (r *Result) OK() bool {
	return len(r.Issues) == 0
}

// Report is the accumulated outcome of a validation run.
type Report struct {
	Results []*Result
}

// OK reports whether every plugin passed.
func (r *Report) OK() bool {
	for _, result := range r.Results {
		if !result.OK() {
			return false
		}
	}
	return true
}

// Valid returns the plugins that passed every check, in discovery order.
func (r *Report) Valid() []*registry.Plugin {
	var valid []*registry.Plugin
	for _, result := range r.Results {
		if result.OK() {
			valid = append(valid, result.Plugin)
		}
	}
	return valid
}

// Issues returns every issue across all plugins, in discovery order.
func (r *Report) Issues() []Issue {
	var issues []Issue
	for _, result := range r.Results {
		issues = append(issues, result.Issues...)
	}
	return issues
}

// Err folds all issues into a single *multierror.Error, or nil when the
// report is clean.
func (r *Report) Err() error {
	var err *multierror.Error
	for _, issue := range r.Issues() {
		err = multierror.Append(err, fmt.Errorf("%s", issue))
	}
	return err.ErrorOrNil()
}
