// Package dump exports a coordinator's render tree as Graphviz DOT and
// renders it to SVG for debugging layout problems that are easier to see
// than to read.
package dump

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/easelkit/easel"
)

// Options configures tree export.
type Options struct {
	// Detailed includes geometry, lifecycle state, and pending dirty
	// flags in node labels. When false, only the object label and ID
	// are shown.
	Detailed bool
}

// ToDOT converts the coordinator's attached tree to Graphviz DOT format.
// The resulting string can be rendered with [RenderSVG] or any external
// dot(1) toolchain.
//
// Sliver nodes are drawn with a light blue fill to set the scroll
// protocol apart from boxes; nodes awaiting a layout flush get a dashed
// outline.
func ToDOT(c *easel.Coordinator, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph easel {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	c.Walk(func(n easel.TreeNode) bool {
		info := easel.Info(n)
		attrs := fmtAttrs(info, fmtLabel(info, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", info.ID.String(), strings.Join(attrs, ", "))
		return true
	})

	buf.WriteString("\n")
	c.Walk(func(n easel.TreeNode) bool {
		if p := n.Parent(); p != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.ID().String(), n.ID().String())
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(info easel.NodeInfo, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%s %v", info.Label, info.ID)
	}

	parts := []string{fmt.Sprintf("%s %s", info.Protocol, info.State)}
	if info.Geometry != "" {
		parts = append(parts, info.Geometry)
	}
	if info.NeedsLayout {
		parts = append(parts, "needs layout")
	}
	if info.NeedsPaint {
		parts = append(parts, "needs paint")
	}

	return fmt.Sprintf("%s %v", info.Label, info.ID) + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(info easel.NodeInfo, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if info.Protocol == easel.ProtocolSliver {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	if info.NeedsLayout {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox rewrites the opening <svg> tag so the viewBox starts
// at the origin. Graphviz emits a translated viewBox that trips up some
// embedders.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
