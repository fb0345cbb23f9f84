package template

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor converts a CSS color (hex or keyword) to a color.Color.
// Unparseable input yields opaque black and ok=false.
func ParseColor(s string) (c color.Color, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.Black, false
	}
	if strings.HasPrefix(s, "#") {
		if len(s) == 9 {
			return parseHexAlpha(s)
		}
		cf, err := colorful.Hex(s)
		if err != nil {
			return color.Black, false
		}
		r, g, b := cf.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
	}
	if named, found := colornames.Map[strings.ToLower(s)]; found {
		return named, true
	}
	if strings.EqualFold(s, "transparent") {
		return color.Transparent, true
	}
	return color.Black, false
}

// parseHexAlpha handles #rrggbbaa, which go-colorful does not.
func parseHexAlpha(s string) (color.Color, bool) {
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.Black, false
	}
	// color.NRGBA is non-premultiplied, matching CSS semantics.
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

// Hex formats c as #rrggbb (or #rrggbbaa when translucent).
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}.Hex()
	}
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{n.R, n.G, n.B, n.A} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
