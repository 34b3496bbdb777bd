package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/pkg/box"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string        // output PNG path; derived from the input when empty
	scale    float64       // pixel density multiplier
	scroll   float64       // scroll applied after the first frame
	parallel int           // layout workers
	budget   time.Duration // frame budget; overruns are logged, not enforced
}

// newRenderCmd creates the render command: scene file in, painted PNG
// out. With --scroll the scene is painted, scrolled, and painted again,
// so the log shows the second frame touching only the viewport.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{scale: 1.0, parallel: 1}

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Rasterize a scene to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.scale <= 0 {
				return fmt.Errorf("scale must be positive, got %g", opts.scale)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: scene name with .png)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixel density multiplier")
	cmd.Flags().Float64Var(&opts.scroll, "scroll", 0, "scroll every viewport by this much after the first frame")
	cmd.Flags().IntVar(&opts.parallel, "parallel", opts.parallel, "layout workers per depth stratum")
	cmd.Flags().DurationVar(&opts.budget, "budget", 0, "frame budget; phases that exceed it are logged")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Rendering %s", input)

	scene, err := loadScene(input)
	if err != nil {
		return err
	}

	coordOpts := []easel.Option{easel.WithLogger(logger)}
	if opts.parallel > 1 {
		coordOpts = append(coordOpts, easel.WithParallelLayout(opts.parallel))
	}
	if opts.budget > 0 {
		coordOpts = append(coordOpts, easel.WithFrameBudget(opts.budget))
	}
	built, err := scene.build(coordOpts...)
	if err != nil {
		return err
	}
	logger.Debugf("Built scene: %d nodes, %d viewports", countNodes(built.coord), len(built.viewports))

	canvas := newPNGCanvas(scene.size(), opts.scale, scene.background())
	defer canvas.Close()

	if _, err := easel.LayoutChild(built.root, box.Tight(scene.size())); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	stats, err := built.coord.Frame(nil, canvas)
	if err != nil {
		return err
	}
	logger.Debugf("%s", stats)

	if opts.scroll != 0 {
		if len(built.viewports) == 0 {
			return fmt.Errorf("--scroll needs a viewport in the scene")
		}
		stats, err = built.coord.Frame(func() error {
			return built.scrollBy(opts.scroll)
		}, canvas)
		if err != nil {
			return err
		}
		logger.Debugf("%s", stats)
	}

	if err := canvas.Err(); err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	if err := canvas.SavePNG(outputPath); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %s", outputPath))
	return nil
}

// countNodes walks the attached tree and counts it.
func countNodes(c *easel.Coordinator) int {
	n := 0
	c.Walk(func(easel.TreeNode) bool {
		n++
		return true
	})
	return n
}
