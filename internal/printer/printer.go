// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bethropolis/gitree/internal/walker"
	"github.com/fatih/color"
)

// Drawing characters
const (
	Branch = "├─ "
	Last   = "└─ "
	Vert   = "│  "
	Space  = "   "
)

// Printer renders a walked tree to the configured output destination
type Printer struct {
	output         io.Writer
	count          int
	useColors      bool
	jsonOutput     bool
	markdownOutput bool
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// JSONNode represents a tree node in JSON output
type JSONNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Type     string      `json:"type"`
	Children []*JSONNode `json:"children,omitempty"`
	Elided   int         `json:"elided,omitempty"`
}

// PrintTree writes tree in the configured format
func (p *Printer) PrintTree(tree *walker.Node) error {
	switch {
	case p.jsonOutput:
		data, err := json.MarshalIndent(toJSON(tree), "", "  ")
		if err != nil {
			return fmt.Errorf("printer: marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(p.output, "%s\n", data)
		p.count++
		return err
	case p.markdownOutput:
		colors := p.useColors
		p.useColors = false
		defer func() { p.useColors = colors }()
		if _, err := fmt.Fprint(p.output, "```\n"); err != nil {
			return err
		}
		if err := p.writeText(tree); err != nil {
			return err
		}
		_, err := fmt.Fprint(p.output, "```\n")
		return err
	default:
		return p.writeText(tree)
	}
}

// Render returns the plain-text rendering of tree without colors
func Render(tree *walker.Node) string {
	var b strings.Builder
	p := New().WithOutput(&b).WithColors(false)
	_ = p.writeText(tree)
	return b.String()
}

func (p *Printer) writeText(tree *walker.Node) error {
	if _, err := fmt.Fprintln(p.output, p.dirName(tree.Name)); err != nil {
		return err
	}
	return p.writeChildren(tree, "")
}

func (p *Printer) writeChildren(node *walker.Node, prefix string) error {
	for i, child := range node.Children {
		isLast := i == len(node.Children)-1 && node.Elided == 0
		connector := Branch
		if isLast {
			connector = Last
		}

		name := child.Name
		if child.IsDir {
			name = p.dirName(name + "/")
		}
		if _, err := fmt.Fprintln(p.output, prefix+connector+name); err != nil {
			return err
		}
		p.count++

		if child.IsDir {
			next := prefix + Vert
			if isLast {
				next = prefix + Space
			}
			if err := p.writeChildren(child, next); err != nil {
				return err
			}
		}
	}

	if node.Elided > 0 {
		if _, err := fmt.Fprintf(p.output, "%s%s... %d more\n", prefix, Last, node.Elided); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) dirName(name string) string {
	if !p.useColors {
		return name
	}
	c := color.New(color.FgBlue, color.Bold)
	c.EnableColor()
	return c.Sprint(name)
}

func toJSON(n *walker.Node) *JSONNode {
	out := &JSONNode{
		Name:   n.Name,
		Path:   n.RelPath,
		Type:   "file",
		Elided: n.Elided,
	}
	if n.IsDir {
		out.Type = "directory"
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

// GetCount returns the number of entries printed
func (p *Printer) GetCount() int {
	return p.count
}
