package registry

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// RequiredSections are the headings every SKILL.md must carry. The validator
// matches them case-insensitively against headings of any level.
var RequiredSections = []string{
	"Goal",
	"Environment",
	"What Worked",
	"Failed Attempts",
	"Final Parameters",
}

// SkillDoc is a parsed SKILL.md document.
type SkillDoc struct {
	Name        string   // from frontmatter
	Description string   // from frontmatter
	Path        string   // path to the SKILL.md file
	Body        string   // markdown body without frontmatter
	Headings    []string // heading texts in document order
}

// HasSection reports whether the document carries a heading matching the
// given title, case-insensitively.
func (s *SkillDoc) HasSection(title string) bool {
	for _, heading := range s.Headings {
		if strings.EqualFold(strings.TrimSpace(heading), title) {
			return true
		}
	}
	return false
}

// MissingSections returns the required sections absent from the document,
// in RequiredSections order.
func (s *SkillDoc) MissingSections() []string {
	var missing []string
	for _, section := range RequiredSections {
		if !s.HasSection(section) {
			missing = append(missing, section)
		}
	}
	return missing
}

// LoadSkillDoc reads and parses a SKILL.md file, extracting its YAML
// frontmatter and heading structure.
func LoadSkillDoc(path string) (*SkillDoc, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skill file %s", path)
	}

	doc, err := ParseSkillDoc(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse skill file %s", path)
	}

	doc.Path = path
	return doc, nil
}

// ParseSkillDoc parses SKILL.md content into a SkillDoc. Frontmatter name and
// description are required.
func ParseSkillDoc(content []byte) (*SkillDoc, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	pctx := parser.NewContext()
	node := md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	doc := &SkillDoc{
		Name:        name,
		Description: description,
		Body:        extractBody(string(content)),
		Headings:    collectHeadings(node, content),
	}

	return doc, nil
}

// collectHeadings walks the parsed document and returns heading texts in
// document order.
func collectHeadings(node ast.Node, source []byte) []string {
	var headings []string

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headings = append(headings, headingText(heading, source))
		}
		return ast.WalkContinue, nil
	})

	return headings
}

func headingText(heading *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if textNode, ok := n.(*ast.Text); ok {
				buf.Write(textNode.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// extractBody removes YAML frontmatter and returns the markdown body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
