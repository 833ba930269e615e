package scene

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/filter"
)

// length decodes a TOML number or a string such as "40%".
type length struct {
	filter.Length
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *length) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		l.Length = filter.Number(float64(v))
	case float64:
		l.Length = filter.Number(v)
	case string:
		parsed, err := filter.ParseLength(v)
		if err != nil {
			return err
		}
		l.Length = parsed
	default:
		return fmt.Errorf("scene: length must be a number or string, got %T", v)
	}
	return nil
}

// numbers decodes a single number, an array of numbers, or an SVG number
// list such as "1 0 0 0 0".
type numbers []float64

// UnmarshalTOML implements toml.Unmarshaler.
func (n *numbers) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case []any:
		out := make(numbers, 0, len(v))
		for i, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return fmt.Errorf("scene: element %d of number list is %T", i, e)
			}
			out = append(out, f)
		}
		*n = out
	case string:
		fields := strings.FieldsFunc(v, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t' || r == '\n'
		})
		out := make(numbers, 0, len(fields))
		for _, s := range fields {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("scene: parse number list %q: %w", v, err)
			}
			out = append(out, f)
		}
		*n = out
	default:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("scene: expected number or list, got %T", v)
		}
		*n = numbers{f}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// parseColor accepts hex colors, CSS color names and "none".
func parseColor(s string) (svgfx.RGBA, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none", "transparent":
		return svgfx.Transparent, nil
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := svgfx.Hex(s); ok {
			return c, nil
		}
		return svgfx.Black, fmt.Errorf("scene: malformed hex color %q", s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return svgfx.FromColor(c), nil
	}
	if c, ok := svgfx.Hex(s); ok {
		return c, nil
	}
	return svgfx.Black, fmt.Errorf("scene: unknown color %q", s)
}

// parseMatrix converts [a, b, c, d, e, f] to a transform. An empty list is
// the identity.
func parseMatrix(v numbers) (svgfx.Matrix, error) {
	switch len(v) {
	case 0:
		return svgfx.Identity(), nil
	case 6:
		return svgfx.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, nil
	}
	return svgfx.Identity(), fmt.Errorf("scene: transform takes 6 values, got %d", len(v))
}
