package cli

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/pkg/geom"
	"github.com/easelkit/easel/pkg/sliver"
)

// sceneFile is the TOML schema for a scene: a frame size, an optional
// background, and a flat list of named nodes wired together by child
// references. Each reference stamps out a fresh subtree, so one named
// node can appear under several parents.
//
//	width = 360
//	height = 600
//	background = "#1a1a2e"
//	root = "screen"
//
//	[[node]]
//	name = "screen"
//	kind = "padding"
//	insets = 8.0
//	children = ["body"]
//
//	[[node]]
//	name = "body"
//	kind = "colored"
//	color = "#e94560"
type sceneFile struct {
	Width      float64     `toml:"width"`
	Height     float64     `toml:"height"`
	Background string      `toml:"background"`
	Root       string      `toml:"root"`
	Nodes      []sceneNode `toml:"node"`
}

// sceneNode is one named node. Kind selects the behavior; the other
// fields apply to the kinds that read them:
//
//   - colored: color
//   - sized: width, height, optionally one child
//   - padding: insets, exactly one child
//   - flex: axis, children; each child's weight field sets its share
//   - viewport: axis, scroll, children (boxes are wrapped as slivers)
//   - gap: extent; only legal inside a viewport
type sceneNode struct {
	Name     string   `toml:"name"`
	Kind     string   `toml:"kind"`
	Color    string   `toml:"color"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Insets   float64  `toml:"insets"`
	Axis     string   `toml:"axis"`
	Weight   int      `toml:"weight"`
	Extent   float64  `toml:"extent"`
	Scroll   float64  `toml:"scroll"`
	Children []string `toml:"children"`
}

// loadScene reads and validates a scene file.
func loadScene(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s sceneFile
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

func (s *sceneFile) validate() error {
	if s.Width <= 0 || s.Height <= 0 || math.IsInf(s.Width, 1) || math.IsInf(s.Height, 1) {
		return fmt.Errorf("scene needs a positive finite size, got %gx%g", s.Width, s.Height)
	}
	if len(s.Nodes) == 0 {
		return fmt.Errorf("scene has no nodes")
	}
	seen := make(map[string]bool, len(s.Nodes))
	for i := range s.Nodes {
		name := s.Nodes[i].Name
		if name == "" {
			return fmt.Errorf("node %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate node name %q", name)
		}
		seen[name] = true
	}
	if s.Root != "" && !seen[s.Root] {
		return fmt.Errorf("root %q names no node", s.Root)
	}
	if s.Background != "" {
		if _, err := parseColor(s.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return nil
}

// rootName returns the declared root, defaulting to the first node.
func (s *sceneFile) rootName() string {
	if s.Root != "" {
		return s.Root
	}
	return s.Nodes[0].Name
}

// size returns the scene's frame size.
func (s *sceneFile) size() geom.Size {
	return geom.Sz(s.Width, s.Height)
}

// background returns the scene's background fill, white when unset.
func (s *sceneFile) background() color.Color {
	if s.Background == "" {
		return color.White
	}
	c, _ := parseColor(s.Background)
	return c
}

// builtScene is a scene realized as a tree attached to its coordinator,
// ready for the driver to lay out and paint.
type builtScene struct {
	coord     *easel.Coordinator
	root      *easel.BoxNode
	viewports []*easel.Viewport
}

// build realizes the scene. The coordinator options are passed through,
// so the caller wires its logger, worker count, and frame budget here.
func (s *sceneFile) build(opts ...easel.Option) (*builtScene, error) {
	coord, err := easel.New(opts...)
	if err != nil {
		return nil, err
	}
	b := &sceneBuilder{
		nodes:    make(map[string]*sceneNode, len(s.Nodes)),
		building: make(map[string]bool),
	}
	for i := range s.Nodes {
		b.nodes[s.Nodes[i].Name] = &s.Nodes[i]
	}
	root, err := b.box(s.rootName())
	if err != nil {
		return nil, err
	}
	if err := coord.AttachRoot(root); err != nil {
		return nil, err
	}
	return &builtScene{coord: coord, root: root, viewports: b.viewports}, nil
}

// scrollBy shifts every viewport in the scene by delta.
func (bs *builtScene) scrollBy(delta float64) error {
	for _, v := range bs.viewports {
		if err := v.ScrollBy(delta); err != nil {
			return err
		}
	}
	return nil
}

// sceneBuilder stamps scene nodes into render subtrees.
type sceneBuilder struct {
	nodes     map[string]*sceneNode
	building  map[string]bool
	viewports []*easel.Viewport
}

func (b *sceneBuilder) box(name string) (*easel.BoxNode, error) {
	def, ok := b.nodes[name]
	if !ok {
		return nil, fmt.Errorf("no node named %q", name)
	}
	if b.building[name] {
		return nil, fmt.Errorf("node %q is its own ancestor", name)
	}
	b.building[name] = true
	defer delete(b.building, name)

	switch def.Kind {
	case "colored":
		col, err := parseColor(def.Color)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		return easel.NewColoredBox(col).Node(), nil

	case "sized":
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("node %q: sized needs a positive width and height", name)
		}
		sb := easel.NewSizedBox(geom.Sz(def.Width, def.Height))
		switch len(def.Children) {
		case 0:
		case 1:
			child, err := b.box(def.Children[0])
			if err != nil {
				return nil, err
			}
			if err := sb.SetChild(child); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("node %q: sized takes at most one child, got %d", name, len(def.Children))
		}
		return sb.Node(), nil

	case "padding":
		if len(def.Children) != 1 {
			return nil, fmt.Errorf("node %q: padding needs exactly one child, got %d", name, len(def.Children))
		}
		if def.Insets < 0 {
			return nil, fmt.Errorf("node %q: insets cannot be negative", name)
		}
		child, err := b.box(def.Children[0])
		if err != nil {
			return nil, err
		}
		p, err := easel.NewPadding(geom.InsetsAll(def.Insets), child)
		if err != nil {
			return nil, err
		}
		return p.Node(), nil

	case "flex":
		axis, err := parseAxis(def.Axis)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		f := easel.NewFlex(axis)
		for _, cn := range def.Children {
			child, err := b.box(cn)
			if err != nil {
				return nil, err
			}
			weight := 0
			if cs, ok := b.nodes[cn]; ok {
				weight = cs.Weight
			}
			if err := f.Append(child, weight); err != nil {
				return nil, fmt.Errorf("node %q: %w", cn, err)
			}
		}
		return f.Node(), nil

	case "viewport":
		dir, err := parseDirection(def.Axis)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		v := easel.NewViewport(dir)
		for _, cn := range def.Children {
			sn, err := b.sliver(cn)
			if err != nil {
				return nil, err
			}
			if err := v.Slivers().Add(sn); err != nil {
				return nil, err
			}
		}
		if def.Scroll != 0 {
			if err := v.ScrollTo(def.Scroll); err != nil {
				return nil, err
			}
		}
		b.viewports = append(b.viewports, v)
		return v.Node(), nil

	case "gap":
		return nil, fmt.Errorf("node %q: gaps only live inside a viewport", name)

	default:
		return nil, fmt.Errorf("node %q: unknown kind %q", name, def.Kind)
	}
}

// sliver realizes a viewport child: gaps directly, anything else as a
// box wrapped in a sliver adapter.
func (b *sceneBuilder) sliver(name string) (*easel.SliverNode, error) {
	def, ok := b.nodes[name]
	if !ok {
		return nil, fmt.Errorf("no node named %q", name)
	}
	if def.Kind == "gap" {
		if def.Extent < 0 {
			return nil, fmt.Errorf("node %q: extent cannot be negative", name)
		}
		return easel.NewSliverGap(def.Extent).Node(), nil
	}
	child, err := b.box(name)
	if err != nil {
		return nil, err
	}
	sb, err := easel.NewSliverBox(child)
	if err != nil {
		return nil, err
	}
	return sb.Node(), nil
}

func parseAxis(s string) (geom.Axis, error) {
	switch s {
	case "", "vertical":
		return geom.Vertical, nil
	case "horizontal":
		return geom.Horizontal, nil
	default:
		return 0, fmt.Errorf("unknown axis %q (want horizontal or vertical)", s)
	}
}

func parseDirection(s string) (sliver.AxisDirection, error) {
	switch s {
	case "", "vertical":
		return sliver.TopToBottom, nil
	case "horizontal":
		return sliver.LeftToRight, nil
	default:
		return 0, fmt.Errorf("unknown axis %q (want horizontal or vertical)", s)
	}
}

// parseColor parses "#RGB", "#RGBA", "#RRGGBB", or "#RRGGBBAA".
func parseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return nil, fmt.Errorf("bad color %q", s)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return nil, fmt.Errorf("bad color %q", s)
		}
	}
	return gg.Hex(s).Color(), nil
}
