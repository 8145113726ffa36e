package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeHexColor canonicalizes a CSS style hex color to six lowercase
// digits without the leading hash. Three digit shorthand is expanded, so
// "#0AE" becomes "00aaee".
func NormalizeHexColor(s string) (string, error) {
	c := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	switch len(c) {
	case 3:
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	case 6:
	default:
		return "", fmt.Errorf("bad hex color %q", s)
	}
	if _, err := strconv.ParseUint(c, 16, 32); err != nil {
		return "", fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return c, nil
}

// rgb returns channel values in [0,1] for a normalized color, zeros when the
// color cannot be parsed.
func rgb(hex string) (r, g, b float64) {
	c := strings.TrimPrefix(hex, "#")
	if len(c) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}

// RelativeLuminance computes luminance of a color per WCAG 2.x.
func RelativeLuminance(hex string) float64 {
	lin := func(c float64) float64 {
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	r, g, b := rgb(hex)
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}

// ContrastText picks a readable text color over the given fill, dark gray on
// light fills and white on dark ones.
func ContrastText(fill string) string {
	if RelativeLuminance(fill) > 0.5 {
		return "333333"
	}
	return "ffffff"
}

// Tint lightens a color by raising its HSL lightness by the given fraction,
// clamped to white.
func Tint(hex string, fraction float64) string {
	r, g, b := rgb(hex)
	h, s, l := rgbToHSL(r, g, b)
	l = math.Min(1, l+fraction)
	r, g, b = hslToRGB(h, s, l)
	return fmt.Sprintf("%02x%02x%02x", uint8(math.Round(r*255)), uint8(math.Round(g*255)), uint8(math.Round(b*255)))
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToRGB(p, q, h+1.0/3), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
