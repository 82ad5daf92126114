package raster

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	family string
	size   float64
}

// fontBook resolves a CSS-ish family name to a TrueType face. Unknown
// families fall back to the default font.
type fontBook struct {
	mu       sync.Mutex
	fallback *truetype.Font
	fonts    map[string]*truetype.Font
	faces    map[faceKey]font.Face
}

func newFontBook() *fontBook {
	// goregular is embedded and known to parse.
	fallback, _ := truetype.Parse(goregular.TTF)
	return &fontBook{
		fallback: fallback,
		fonts:    make(map[string]*truetype.Font),
		faces:    make(map[faceKey]font.Face),
	}
}

func (b *fontBook) register(family string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("raster: parse font %q: %w", family, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if family == "" {
		b.fallback = f
	} else {
		b.fonts[strings.ToLower(family)] = f
	}
	b.faces = make(map[faceKey]font.Face)
	return nil
}

func (b *fontBook) face(family string, size float64) font.Face {
	family = strings.ToLower(family)
	key := faceKey{family: family, size: size}

	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.faces[key]; ok {
		return f
	}
	ttf, ok := b.fonts[family]
	if !ok {
		ttf = b.fallback
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})
	b.faces[key] = f
	return f
}
