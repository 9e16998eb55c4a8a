package render

import (
	"fmt"
	"image/color"
	"strings"
)

// namedColors are the color names accepted in configuration.
var namedColors = map[string]color.NRGBA{
	"red":    {R: 0xff, A: 0xff},
	"green":  {G: 0x80, A: 0xff},
	"blue":   {B: 0xff, A: 0xff},
	"orange": {R: 0xff, G: 0xa5, A: 0xff},
	"purple": {R: 0x80, B: 0x80, A: 0xff},
	"black":  {A: 0xff},
	"gray":   {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseColor accepts a named color or a #RRGGBB hex string.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	if strings.HasPrefix(name, "#") && len(name) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(name, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized color %q (use a name like red/blue or #RRGGBB)", s)
}
