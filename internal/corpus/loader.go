package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"
)

const topicPrefix = "topic:"

// Loader parses markdown guidance documents into Sections using the
// goldmark AST. One file becomes one section: the first level-1 heading is
// the title, a leading "Topic:" paragraph sets the topic, and every other
// top-level text block becomes a paragraph.
type Loader struct {
	parser goldmark.Markdown
}

// NewLoader creates a markdown corpus loader.
func NewLoader() *Loader {
	return &Loader{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// LoadDir reads every .md file under dir (non-recursive, sorted by filename
// so section order is stable) and returns the validated section set.
func (l *Loader) LoadDir(dir string) ([]Section, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	sections := make([]Section, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus file %s: %w", name, err)
		}
		section, err := l.ParseFile(name, content)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	if err := ValidateAll(sections); err != nil {
		return nil, fmt.Errorf("corpus validation failed: %w", err)
	}
	return sections, nil
}

// ParseFile parses a single markdown document into a Section. The section ID
// is derived from the filename, paragraph IDs from the section ID and the
// paragraph's position.
func (l *Loader) ParseFile(filename string, content []byte) (Section, error) {
	sectionID := sectionIDFromFilename(filename)
	if sectionID == "" {
		return Section{}, fmt.Errorf("cannot derive section_id from filename %q", filename)
	}

	reader := gmtext.NewReader(content)
	doc := l.parser.Parser().Parse(reader)

	section := Section{SectionID: sectionID}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if n.Level == 1 && section.Title == "" {
				section.Title = blockText(n, content)
			}
		default:
			text := blockText(node, content)
			if text == "" {
				continue
			}
			if section.Topic == "" && strings.HasPrefix(strings.ToLower(text), topicPrefix) {
				section.Topic = strings.TrimSpace(text[len(topicPrefix):])
				continue
			}
			section.Paragraphs = append(section.Paragraphs, text)
		}
	}

	if section.Title == "" {
		section.Title = titleFromFilename(filename)
	}
	if section.Topic == "" {
		section.Topic = strings.ToLower(section.Title)
	}

	section.ParagraphIDs = make([]string, len(section.Paragraphs))
	for i := range section.Paragraphs {
		section.ParagraphIDs[i] = fmt.Sprintf("%s-p%d", sectionID, i+1)
	}

	if err := section.Validate(); err != nil {
		return Section{}, fmt.Errorf("corpus file %s: %w", filename, err)
	}
	return section, nil
}

// blockText collects the raw text content of a block node, joining soft line
// breaks with single spaces.
func blockText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// sectionIDFromFilename converts "Lawful_Basis.md" into "lawful-basis".
func sectionIDFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}

// titleFromFilename is the fallback title for documents without an H1.
func titleFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return strings.TrimSpace(base)
}
