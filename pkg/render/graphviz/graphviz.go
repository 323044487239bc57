// Package graphviz renders generated diagram text locally using Graphviz.
//
// It understands only the diagram subset this project emits: nested
// package blocks, component declarations, and solid or dashed edges with
// optional labels. Packages become Graphviz clusters, empty packages
// become folder-shaped nodes (Graphviz drops clusters with no content),
// and components become component-shaped nodes. The result is not a
// faithful PlantUML rendering, but it needs no network access.
package graphviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/archmap/archmap/pkg/errors"
)

// Renderer renders diagrams in-process via Graphviz.
type Renderer struct{}

// NewRenderer creates a Graphviz renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Name identifies the backend.
func (r *Renderer) Name() string { return "graphviz" }

// Format reports the artifact format produced.
func (r *Renderer) Format() string { return "svg" }

// Render converts diagram text to DOT and renders it to SVG.
func (r *Renderer) Render(ctx context.Context, text string) ([]byte, error) {
	dot, err := ToDOT(text)
	if err != nil {
		return nil, err
	}
	return renderSVG(ctx, dot)
}

// =============================================================================
// Diagram Text Parsing
// =============================================================================

// pkgNode is one package block with its nested packages and components.
type pkgNode struct {
	name       string
	packages   []*pkgNode
	components []string
}

// edgeLine is one dependency arrow between two declared or implicit nodes.
type edgeLine struct {
	from, to, label string
	dashed          bool
}

// ToDOT converts the emitted diagram subset into Graphviz DOT source.
// Lines outside the subset are an error rather than silently dropped, so
// format drift between the builders and this parser surfaces immediately.
func ToDOT(text string) (string, error) {
	root, edges, err := parse(text)
	if err != nil {
		return "", err
	}
	return writeDOT(root, edges), nil
}

func parse(text string) (*pkgNode, []edgeLine, error) {
	root := &pkgNode{}
	stack := []*pkgNode{root}
	var edges []edgeLine

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || line == "@startuml" || line == "@enduml" || strings.HasPrefix(line, "skinparam"):
			continue

		case strings.Contains(line, "-->") || strings.Contains(line, "..>"):
			e, err := parseEdge(line)
			if err != nil {
				return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "line %d", i+1)
			}
			edges = append(edges, e)

		case strings.HasPrefix(line, "package "):
			name, open, err := parsePackage(line)
			if err != nil {
				return nil, nil, apperrors.Wrap(apperrors.ErrCodeInvalidDiagram, err, "line %d", i+1)
			}
			node := &pkgNode{name: name}
			top := stack[len(stack)-1]
			top.packages = append(top.packages, node)
			if open {
				stack = append(stack, node)
			}

		case line == "}":
			if len(stack) == 1 {
				return nil, nil, apperrors.New(apperrors.ErrCodeInvalidDiagram, "line %d: unbalanced closing brace", i+1)
			}
			stack = stack[:len(stack)-1]

		case strings.HasPrefix(line, "["):
			name, rest, err := parseRef(line)
			if err != nil || strings.TrimSpace(rest) != "" {
				return nil, nil, apperrors.New(apperrors.ErrCodeInvalidDiagram, "line %d: malformed component %q", i+1, line)
			}
			top := stack[len(stack)-1]
			top.components = append(top.components, name)

		default:
			return nil, nil, apperrors.New(apperrors.ErrCodeInvalidDiagram, "line %d: unrecognized line %q", i+1, line)
		}
	}

	if len(stack) != 1 {
		return nil, nil, apperrors.New(apperrors.ErrCodeInvalidDiagram, "unclosed package block")
	}
	return root, edges, nil
}

// parsePackage splits a package declaration into its name and whether the
// block stays open ({) or closes immediately ({}).
func parsePackage(line string) (string, bool, error) {
	rest := strings.TrimPrefix(line, "package ")
	if !strings.HasPrefix(rest, `"`) {
		return "", false, fmt.Errorf("malformed package %q", line)
	}
	end := strings.Index(rest[1:], `"`)
	if end < 0 {
		return "", false, fmt.Errorf("malformed package %q", line)
	}
	name := rest[1 : 1+end]

	switch strings.TrimSpace(rest[2+end:]) {
	case "{}":
		return name, false, nil
	case "{":
		return name, true, nil
	}
	return "", false, fmt.Errorf("malformed package %q", line)
}

// parseRef reads one quoted name ("x") or component reference (["x"]) off
// the front of s and returns the remainder.
func parseRef(s string) (string, string, error) {
	switch {
	case strings.HasPrefix(s, `["`):
		end := strings.Index(s, `"]`)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated component reference %q", s)
		}
		return s[2:end], s[end+2:], nil
	case strings.HasPrefix(s, `"`):
		end := strings.Index(s[1:], `"`)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated name %q", s)
		}
		return s[1 : 1+end], s[2+end:], nil
	}
	return "", "", fmt.Errorf("expected quoted name in %q", s)
}

func parseEdge(line string) (edgeLine, error) {
	arrow := "-->"
	dashed := false
	if strings.Contains(line, "..>") {
		arrow = "..>"
		dashed = true
	}

	idx := strings.Index(line, arrow)
	left := strings.TrimSpace(line[:idx])
	right := strings.TrimSpace(line[idx+len(arrow):])

	from, rest, err := parseRef(left)
	if err != nil {
		return edgeLine{}, err
	}
	if strings.TrimSpace(rest) != "" {
		return edgeLine{}, fmt.Errorf("malformed edge %q", line)
	}

	to, rest, err := parseRef(right)
	if err != nil {
		return edgeLine{}, err
	}

	// Optional label: either a bare word (use, call) or a quoted string.
	label := ""
	rest = strings.TrimSpace(rest)
	if rest != "" {
		if !strings.HasPrefix(rest, ":") {
			return edgeLine{}, fmt.Errorf("malformed edge label in %q", line)
		}
		label = strings.Trim(strings.TrimSpace(rest[1:]), `"`)
	}

	return edgeLine{from: from, to: to, label: label, dashed: dashed}, nil
}

// =============================================================================
// DOT Generation
// =============================================================================

func writeDOT(root *pkgNode, edges []edgeLine) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	clusters := 0
	for _, p := range root.packages {
		writePkg(&buf, p, "  ", &clusters)
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		var attrs []string
		if e.label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.label))
		}
		if e.dashed {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.from, e.to, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writePkg(buf *bytes.Buffer, p *pkgNode, indent string, clusters *int) {
	if len(p.packages) == 0 && len(p.components) == 0 {
		// Graphviz hides empty clusters, so leaf packages become nodes.
		fmt.Fprintf(buf, "%s%q [shape=tab];\n", indent, p.name)
		return
	}

	fmt.Fprintf(buf, "%ssubgraph cluster_%d {\n", indent, *clusters)
	*clusters++
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, p.name)
	for _, c := range p.components {
		fmt.Fprintf(buf, "%s  %q [shape=component];\n", indent, c)
	}
	for _, child := range p.packages {
		writePkg(buf, child, indent+"  ", clusters)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

// =============================================================================
// SVG Rendering
// =============================================================================

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
