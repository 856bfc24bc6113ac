package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// Response headers describing the packing behind an artifact.
const (
	HeaderSceneHash = "X-Scene-Hash"
	HeaderSceneID   = "X-Scene-Id"
	HeaderCircles   = "X-Circles"
	HeaderTicks     = "X-Ticks"
	HeaderCache     = "X-Cache"
)

// PackRequest is the body of POST /pack and the first message of a
// /ws/pack stream. Config fields left out keep their defaults.
type PackRequest struct {
	pipeline.Options

	// Format selects the single artifact returned; defaults to svg.
	Format string `json:"format,omitempty"`
	// Every is the WebSocket progress interval in ticks.
	Every int `json:"every,omitempty"`
}

func decodePackRequest(r io.Reader) (PackRequest, error) {
	req := PackRequest{Options: pipeline.Options{Config: pack.DefaultConfig()}}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode pack request")
	}

	if req.Format == "" {
		req.Format = pipeline.FormatSVG
		if len(req.Formats) > 0 {
			req.Format = req.Formats[0]
		}
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		return req, err
	}
	req.Formats = []string{req.Format}

	if err := checkPackLimits(req.Config); err != nil {
		return req, err
	}
	if err := checkImageLimits(req.Format, req.Config.Size, req.Scale); err != nil {
		return req, err
	}
	if req.TickLimit == 0 || req.TickLimit > MaxTickLimit {
		req.TickLimit = MaxTickLimit
	}
	if req.Every <= 0 {
		req.Every = DefaultProgressEvery
	}
	return req, nil
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	req, err := decodePackRequest(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	h := w.Header()
	h.Set(HeaderSceneHash, res.SceneHash)
	h.Set(HeaderSceneID, res.Scene.ID.String())
	h.Set(HeaderCircles, strconv.Itoa(res.Stats.Circles))
	h.Set(HeaderTicks, strconv.Itoa(res.Stats.Ticks))
	h.Set(HeaderCache, cacheStatus(res.CacheInfo.PackHit))
	writeArtifact(w, req.Format, res.Artifacts[req.Format])
}

// handleRender renders the uploaded scene. Render options come from the
// query string: format, style, background, stroke, stroke_width and scale.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Config:     sc.Config,
		Seed:       sc.Seed,
		Formats:    []string{format},
		Style:      q.Get("style"),
		Background: q.Get("background"),
		Stroke:     q.Get("stroke"),
	}
	if opts.StrokeWidth, err = floatParam(q.Get("stroke_width")); err != nil {
		s.writeError(w, err)
		return
	}
	if opts.Scale, err = floatParam(q.Get("scale")); err != nil {
		s.writeError(w, err)
		return
	}
	if sc.Size > MaxSize {
		s.writeError(w, errors.New(errors.ErrCodeInvalidScene,
			"scene size %v exceeds the server limit of %v", sc.Size, MaxSize))
		return
	}
	if err := checkImageLimits(format, sc.Size, opts.Scale); err != nil {
		s.writeError(w, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(HeaderSceneHash, pipeline.SceneHash(sc))
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeArtifact(w, format, artifacts[format])
}

// checkPackLimits rejects configurations whose ticks would be too expensive
// to serve. The pack package itself accepts any valid config.
func checkPackLimits(cfg pack.Config) error {
	switch {
	case cfg.Size > MaxSize:
		return errors.Invalid("size", "must be at most %v on this server, got %v", MaxSize, cfg.Size)
	case cfg.MaxAttempts > MaxAttempts:
		return errors.Invalid("max_attempts", "must be at most %d on this server, got %d", MaxAttempts, cfg.MaxAttempts)
	case cfg.TargetPerFrame > MaxTargetPerFrame:
		return errors.Invalid("target_per_frame", "must be at most %d on this server, got %d", MaxTargetPerFrame, cfg.TargetPerFrame)
	}
	return nil
}

// checkImageLimits bounds the PNG canvas before anything is allocated.
func checkImageLimits(format string, size, scale float64) error {
	if format != pipeline.FormatPNG {
		return nil
	}
	if scale == 0 {
		scale = render.DefaultScale
	}
	if side := size * scale; side > MaxImageSide {
		return errors.Invalid("scale", "gives a %v px image, above the server limit of %d px", side, MaxImageSide)
	}
	return nil
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG, pipeline.FormatGraph:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", v)
	}
	return f, nil
}
