// Package provenance draws where flagged packages come from.
//
// The graph has one node for the project, one per flagged package and one
// per parent that pulled an indirect finding in. Direct findings hang off
// the project node; indirect findings hang off their parent.
package provenance

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/deps"
)

// Options configures provenance rendering.
type Options struct {
	// Project labels the root node. Defaults to "root".
	Project string
	// Detailed adds the category and suggestion to each finding's label.
	Detailed bool
}

// ToDOT converts a result to Graphviz DOT. The output is deterministic:
// nodes and edges follow the result's category and finding order.
//
// Catalog findings are filled red, "other" findings amber, and parents that
// are not findings themselves are drawn dashed.
func ToDOT(r *classify.Result, opts Options) string {
	root := opts.Project
	if root == "" {
		root = deps.RootParent
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=\"#d0ecec\"];\n", nodeID(root, true), root)

	flagged := make(map[string]bool)
	findings := r.Findings()
	for _, f := range findings {
		if flagged[f.Name] {
			continue
		}
		flagged[f.Name] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(f.Name, false), strings.Join(findingAttrs(f, opts.Detailed), ", "))
	}

	parents := make(map[string]bool)
	for _, f := range findings {
		if f.Kind != deps.KindIndirect || flagged[f.Via] || parents[f.Via] || f.Via == deps.RootParent {
			continue
		}
		parents[f.Via] = true
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", nodeID(f.Via, false), f.Via)
	}

	buf.WriteString("\n")
	edges := make(map[[2]string]bool)
	for _, f := range findings {
		from := nodeID(root, true)
		if f.Kind == deps.KindIndirect && f.Via != deps.RootParent {
			from = nodeID(f.Via, false)
		}
		e := [2]string{from, nodeID(f.Name, false)}
		if edges[e] {
			continue
		}
		edges[e] = true
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID keeps the project node apart from a package of the same name.
func nodeID(name string, root bool) string {
	if root {
		return "project:" + name
	}
	return "pkg:" + name
}

func findingAttrs(f classify.Finding, detailed bool) []string {
	label := f.Name
	if detailed {
		label = fmt.Sprintf("%s\n[%s]\n%s", f.Name, f.Category, f.Suggestion)
	}
	fill := "#f4b6b6"
	if f.Category == catalog.Other {
		fill = "#fbe3a1"
	}
	return []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", fill)}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg tag with one sized
// from its viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
