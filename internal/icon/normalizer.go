package icon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/common"

	"github.com/anthonynsimon/bild/imgio"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	DefaultSize      = 96
	DefaultCacheSize = 64
)

var ErrEmptyIcon = errors.New("svg icon has nothing to draw")

// Normalizer turns wallet icon data URLs into base64 raster bytes without a prefix.
// Vector icons are rendered to a fixed square canvas; raster icons pass through.
type Normalizer struct {
	size    int
	encoder imgio.Encoder
	cache   *lru.Cache[string, string]
}

// NewNormalizer creates a Normalizer rendering vector icons at size x size
func NewNormalizer(size, cacheSize int) (*Normalizer, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon cache: %w", err)
	}
	return &Normalizer{
		size:    size,
		encoder: imgio.PNGEncoder(),
		cache:   cache,
	}, nil
}

// Normalize converts an icon data URL to base64 PNG (or the original raster) bytes
func (n *Normalizer) Normalize(icon string) (string, error) {
	if icon == "" {
		return "", nil
	}
	if cached, ok := n.cache.Get(icon); ok {
		return cached, nil
	}

	out := common.StripImagePrefix(icon)
	if common.IsSVGDataURL(icon) {
		png, err := n.rasterize(icon)
		if err != nil {
			return "", err
		}
		out = base64.StdEncoding.EncodeToString(png)
	}

	n.cache.Add(icon, out)
	return out, nil
}

func (n *Normalizer) rasterize(icon string) ([]byte, error) {
	parsed, err := common.ParseDataURL(icon)
	if err != nil {
		return nil, fmt.Errorf("failed to parse icon: %w", err)
	}

	svg, err := oksvg.ReadIconStream(bytes.NewReader(parsed.Data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to read svg: %w", err)
	}
	if len(svg.SVGPaths) == 0 || svg.ViewBox.W <= 0 || svg.ViewBox.H <= 0 {
		return nil, ErrEmptyIcon
	}
	svg.SetTarget(0, 0, float64(n.size), float64(n.size))

	img := image.NewRGBA(image.Rect(0, 0, n.size, n.size))
	scanner := rasterx.NewScannerGV(n.size, n.size, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(n.size, n.size, scanner), 1)

	var buf bytes.Buffer
	if err := n.encoder(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
