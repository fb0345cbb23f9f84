package template

import (
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a parsed CSS font shorthand such as "bold 14pt Arial".
type Font struct {
	Family string
	Size   float64 // pixels
	Bold   bool
	Italic bool
}

const defaultFontSize = 16.0 // 12pt

// ParseFont parses a CSS font shorthand. Unknown tokens are ignored and a
// missing size falls back to 12pt; the result is always usable.
func ParseFont(s string) Font {
	f := Font{Size: defaultFontSize}
	var family []string
	sized := false
	for _, tok := range strings.Fields(s) {
		lower := strings.ToLower(tok)
		switch {
		case sized:
			family = append(family, tok)
		case lower == "normal" || lower == "small-caps":
		case lower == "italic" || lower == "oblique":
			f.Italic = true
		case lower == "bold" || lower == "bolder":
			f.Bold = true
		case lower == "lighter":
		case isWeight(lower):
			w, _ := strconv.Atoi(lower)
			f.Bold = w >= 600
		default:
			if px, ok := parseSize(lower); ok {
				f.Size = px
				sized = true
				continue
			}
			family = append(family, tok)
			sized = true
		}
	}
	f.Family = strings.Trim(strings.Join(family, " "), `"'`)
	return f
}

// String formats f back into shorthand form with a pixel size.
func (f Font) String() string {
	var b strings.Builder
	if f.Italic {
		b.WriteString("italic ")
	}
	if f.Bold {
		b.WriteString("bold ")
	} else {
		b.WriteString("normal ")
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	b.WriteString("px")
	if f.Family != "" {
		b.WriteString(" ")
		b.WriteString(f.Family)
	}
	return b.String()
}

func isWeight(s string) bool {
	if len(s) != 3 || !strings.HasSuffix(s, "00") {
		return false
	}
	return s[0] >= '1' && s[0] <= '9'
}

// parseSize converts "12pt", "16px" or "1.5em" to pixels.
func parseSize(s string) (float64, bool) {
	units := []struct {
		suffix   string
		mul, div float64
	}{
		{"pt", 4, 3},
		{"px", 1, 1},
		{"em", 16, 1},
	}
	for _, u := range units {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, u.suffix), 64)
		if err != nil || v <= 0 {
			return 0, false
		}
		return v * u.mul / u.div, true
	}
	return 0, false
}

// =============================================================================
// Faces
// =============================================================================

var (
	faceMu    sync.Mutex
	faceCache = map[Font]font.Face{}
)

// Face returns a font face for f. The family is not resolved against system
// fonts: every face is drawn with the Go fonts in the matching weight.
func (f Font) Face() font.Face {
	key := Font{Size: f.Size, Bold: f.Bold, Italic: f.Italic}

	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face
	}

	ttf, err := truetype.Parse(fontData(key.Bold, key.Italic))
	if err != nil {
		// The embedded Go fonts always parse.
		panic(err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    key.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faceCache[key] = face
	return face
}

func fontData(bold, italic bool) []byte {
	switch {
	case bold && italic:
		return gobolditalic.TTF
	case bold:
		return gobold.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
