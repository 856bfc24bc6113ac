package render

import (
	"image/color"
	"regexp"
	"strconv"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// Drawing defaults: a dark gray hairline on white.
const (
	DefaultBackground  = "#ffffff"
	DefaultStroke      = "#202020"
	DefaultStrokeWidth = 1.0
	DefaultScale       = 2.0
)

// Option configures [RenderSVG] and [RenderPNG].
type Option func(*renderer)

type renderer struct {
	style       Style
	background  string
	stroke      string
	strokeWidth float64
	scale       float64
}

func WithStyle(s Style) Option         { return func(r *renderer) { r.style = s } }
func WithBackground(hex string) Option { return func(r *renderer) { r.background = hex } }
func WithStroke(hex string) Option     { return func(r *renderer) { r.stroke = hex } }
func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }

// WithScale sets the PNG pixel density; 2 renders a 540 unit scene at
// 1080x1080. Ignored by SVG.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) (renderer, error) {
	r := renderer{
		style:       NewRings(),
		background:  DefaultBackground,
		stroke:      DefaultStroke,
		strokeWidth: DefaultStrokeWidth,
		scale:       DefaultScale,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if err := ValidateColor(r.background); err != nil {
		return r, err
	}
	if err := ValidateColor(r.stroke); err != nil {
		return r, err
	}
	if r.strokeWidth <= 0 || r.scale <= 0 {
		return r, errors.New(errors.ErrCodeInvalidInput,
			"stroke width and scale must be positive, got %v and %v", r.strokeWidth, r.scale)
	}
	return r, nil
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor accepts #rgb, #rrggbb and #rrggbbaa.
func ValidateColor(hex string) error {
	if !hexColorRe.MatchString(hex) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid color %q (want #rrggbb)", hex)
	}
	return nil
}

// ParseColor converts a color accepted by [ValidateColor] to RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	if err := ValidateColor(hex); err != nil {
		return color.RGBA{}, err
	}
	h := hex[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", hex)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
