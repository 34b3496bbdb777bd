package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/pkg/box"
)

// Outline styles: one color per part of the line so the tree reads at a
// glance. 256-color palette indices keep it legible on dark and light
// terminals.
var (
	styleLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleID    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleMeta  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleGeom  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleDirty = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// dumpOpts holds the command-line flags for the dump command.
type dumpOpts struct {
	plain      bool // no styling, the library's raw outline
	skipLayout bool // dump the tree as built, before any layout
	width      int  // line width; 0 means the terminal's
}

// newDumpCmd creates the dump command: an indented outline of the
// scene's tree, one node per line, settled through a layout pass first
// so geometry and dirt reflect a finished frame.
func newDumpCmd() *cobra.Command {
	var opts dumpOpts

	cmd := &cobra.Command{
		Use:   "dump [scene.toml]",
		Short: "Print a scene's render tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "unstyled output")
	cmd.Flags().BoolVar(&opts.skipLayout, "skip-layout", false, "dump the tree before laying it out")
	cmd.Flags().IntVar(&opts.width, "width", 0, "wrap width (default: terminal width)")

	return cmd
}

func runDump(ctx context.Context, out io.Writer, input string, opts *dumpOpts) error {
	logger := loggerFromContext(ctx)

	scene, err := loadScene(input)
	if err != nil {
		return err
	}
	built, err := scene.build(easel.WithLogger(logger))
	if err != nil {
		return err
	}

	if !opts.skipLayout {
		if _, err := easel.LayoutChild(built.root, box.Tight(scene.size())); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		// Settle the paint marks the layout raised so the outline shows
		// a finished frame, not a half-flushed one.
		if _, err := built.coord.Frame(nil, nil); err != nil {
			return err
		}
	}

	if opts.plain {
		return built.coord.DumpTree(out)
	}

	width := opts.width
	if width <= 0 {
		width = terminalWidth(int(os.Stdout.Fd()), 80)
	}
	built.coord.Walk(func(n easel.TreeNode) bool {
		fmt.Fprintln(out, outlineLine(easel.Info(n), width))
		return true
	})
	return nil
}

// outlineLine styles one node's summary, dropping trailing parts rather
// than cutting an escape sequence mid-run when the line would overflow.
func outlineLine(info easel.NodeInfo, width int) string {
	parts := []string{
		strings.Repeat("  ", info.Depth) + styleLabel.Render(info.Label),
		styleID.Render(info.ID.String()),
		styleMeta.Render(fmt.Sprintf("[%s %s]", info.Protocol, info.State)),
	}
	if info.Geometry != "" {
		parts = append(parts, styleGeom.Render(info.Geometry))
	}
	if info.NeedsLayout {
		parts = append(parts, styleDirty.Render("!layout"))
	}
	if info.NeedsPaint {
		parts = append(parts, styleDirty.Render("!paint"))
	}

	line := parts[0]
	for _, part := range parts[1:] {
		if lipgloss.Width(line)+1+lipgloss.Width(part) > width {
			break
		}
		line += " " + part
	}
	return line
}
