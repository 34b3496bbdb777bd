package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/dump"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output path; "-" writes to stdout
	format   string // "dot" or "svg"
	detailed bool   // geometry and dirt in node labels
}

// newGraphCmd creates the graph command: the scene's tree as Graphviz
// DOT, or rendered straight to SVG.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph [scene.toml]",
		Short: "Export a scene's render tree as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "dot" && opts.format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runGraph(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path, '-' for stdout (default: scene name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include geometry, state, and dirty flags in labels")

	return cmd
}

func runGraph(ctx context.Context, stdout io.Writer, input string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	scene, err := loadScene(input)
	if err != nil {
		return err
	}
	built, err := scene.build(easel.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := easel.LayoutChild(built.root, box.Tight(scene.size())); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if _, err := built.coord.Frame(nil, nil); err != nil {
		return err
	}

	dot := dump.ToDOT(built.coord, dump.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "svg":
		logger.Info("Rendering tree SVG")
		data, err = dump.RenderSVG(dot)
		if err != nil {
			return err
		}
	default:
		data = []byte(dot)
	}

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}
	logger.Infof("Generated %s", outputPath)
	return nil
}
