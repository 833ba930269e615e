package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

// document is the TOML layout of a scene file.
type document struct {
	Canvas   canvasSpec            `toml:"canvas"`
	Elements []elementSpec         `toml:"element"`
	Filters  map[string]filterSpec `toml:"filter"`
}

type canvasSpec struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Background string  `toml:"background"`
	Transform  numbers `toml:"transform"`
}

type elementSpec struct {
	Type      string   `toml:"type"`
	X         float64  `toml:"x"`
	Y         float64  `toml:"y"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Fill      string   `toml:"fill"`
	Opacity   *float64 `toml:"opacity"`
	Href      string   `toml:"href"`
	Filter    string   `toml:"filter"`
	Transform numbers  `toml:"transform"`
	Clip      numbers  `toml:"clip"`
}

type filterSpec struct {
	X                  length          `toml:"x"`
	Y                  length          `toml:"y"`
	Width              length          `toml:"width"`
	Height             length          `toml:"height"`
	FilterUnits        string          `toml:"filterUnits"`
	PrimitiveUnits     string          `toml:"primitiveUnits"`
	ColorInterpolation string          `toml:"color-interpolation-filters"`
	Primitives         []primitiveSpec `toml:"primitive"`
}

// Load reads a scene file. Image paths are resolved relative to the
// directory of path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return Decode(data, filepath.Dir(path))
}

// Decode parses a scene. dir is the base directory for image paths.
func Decode(data []byte, dir string) (*Scene, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		svgfx.Logger().Warn("scene: ignoring unknown keys", "keys", strings.Join(keys, ", "))
	}
	return doc.build(dir)
}

func (doc *document) build(dir string) (*Scene, error) {
	c := doc.Canvas
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("scene: canvas size %dx%d must be positive", c.Width, c.Height)
	}
	s := &Scene{
		Width:      c.Width,
		Height:     c.Height,
		Background: svgfx.Transparent,
		Filters:    make(map[string]*filter.Filter, len(doc.Filters)),
	}
	if c.Background != "" {
		bg, err := parseColor(c.Background)
		if err != nil {
			return nil, fmt.Errorf("scene: canvas background: %w", err)
		}
		s.Background = bg
	}
	m, err := parseMatrix(c.Transform)
	if err != nil {
		return nil, fmt.Errorf("scene: canvas: %w", err)
	}
	s.Transform = m

	for id, fs := range doc.Filters {
		f, err := fs.build()
		if err != nil {
			return nil, fmt.Errorf("scene: filter %q: %w", id, err)
		}
		s.Filters[id] = f
	}
	for i := range doc.Elements {
		el, err := doc.Elements[i].build(dir)
		if err != nil {
			return nil, fmt.Errorf("scene: element %d: %w", i, err)
		}
		if el.Filter != "" {
			if _, ok := s.Filters[el.Filter]; !ok {
				return nil, fmt.Errorf("scene: element %d: unknown filter %q", i, el.Filter)
			}
		}
		s.Elements = append(s.Elements, el)
	}
	return s, nil
}

func (fs *filterSpec) build() (*filter.Filter, error) {
	opts := []filter.Option{
		filter.WithRegion(fs.X.Length, fs.Y.Length, fs.Width.Length, fs.Height.Length),
	}
	if fs.FilterUnits != "" {
		u, err := filter.ParseUnits(fs.FilterUnits)
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter.WithFilterUnits(u))
	}
	if fs.PrimitiveUnits != "" {
		u, err := filter.ParseUnits(fs.PrimitiveUnits)
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter.WithPrimitiveUnits(u))
	}
	ci, err := filter.ParseColorInterpolation(fs.ColorInterpolation)
	if err != nil {
		return nil, err
	}
	opts = append(opts, filter.WithColorInterpolation(ci))

	prims := make([]filter.Primitive, 0, len(fs.Primitives))
	for i := range fs.Primitives {
		p, err := buildPrimitive(&fs.Primitives[i])
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		prims = append(prims, p)
	}
	return filter.New(prims, opts...), nil
}

func (es *elementSpec) build(dir string) (Element, error) {
	el := Element{
		Bounds:  svgfx.XYWH(es.X, es.Y, es.Width, es.Height),
		Opacity: 1,
		Filter:  es.Filter,
	}
	if es.Opacity != nil {
		el.Opacity = *es.Opacity
	}
	m, err := parseMatrix(es.Transform)
	if err != nil {
		return el, err
	}
	el.Transform = m
	switch len(es.Clip) {
	case 0:
	case 4:
		r := svgfx.XYWH(es.Clip[0], es.Clip[1], es.Clip[2], es.Clip[3])
		el.Clip = &r
	default:
		return el, fmt.Errorf("clip takes 4 values, got %d", len(es.Clip))
	}

	switch canonicalType(es.Type) {
	case "", "rect":
		el.Kind = KindRect
		fill := "black"
		if es.Fill != "" {
			fill = es.Fill
		}
		if el.Fill, err = parseColor(fill); err != nil {
			return el, err
		}
	case "image":
		el.Kind = KindImage
		if es.Href == "" {
			return el, fmt.Errorf("image without href")
		}
		path := es.Href
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path) //nolint:gosec // scene files reference local images
		if err != nil {
			return el, err
		}
		pm, err := filter.EncodedChannel(data).Pixmap()
		if err != nil {
			return el, err
		}
		el.Image = pm
		if es.Width == 0 && es.Height == 0 {
			el.Bounds = svgfx.XYWH(es.X, es.Y, float64(pm.Width()), float64(pm.Height()))
		}
	default:
		return el, fmt.Errorf("unknown element type %q", es.Type)
	}
	return el, nil
}
