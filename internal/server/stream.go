package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/scene"
)

const (
	writeWait    = 10 * time.Second
	requestWait  = 30 * time.Second
	maxFrameSize = MaxBodyBytes
)

// Frame types sent on /ws/pack.
const (
	FrameProgress = "progress"
	FrameDone     = "done"
	FrameError    = "error"
)

// Frame is one message of a /ws/pack stream. Progress frames carry the tick
// counters; the done frame carries the finished scene.
type Frame struct {
	Type      string       `json:"type"`
	Tick      int          `json:"tick,omitempty"`
	Circles   int          `json:"circles,omitempty"`
	Growing   int          `json:"growing,omitempty"`
	Cached    bool         `json:"cached,omitempty"`
	SceneHash string       `json:"scene_hash,omitempty"`
	Scene     *scene.Scene `json:"scene,omitempty"`
	Code      string       `json:"code,omitempty"`
	Message   string       `json:"message,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handlePackStream upgrades the connection, reads one [PackRequest] and
// packs it, writing a progress frame every req.Every ticks and a final done
// or error frame. Closing the connection cancels the packing.
func (s *Server) handlePackStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(requestWait))
	_, body, err := conn.NextReader()
	if err != nil {
		s.logger.Debug("websocket closed before request", "error", err)
		return
	}
	req, err := decodePackRequest(body)
	if err != nil {
		s.writeFrame(conn, errorFrame(err))
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// The client sends nothing after the request; a failed read means it
	// went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	onTick := func(tick int, f *pack.Field, res pack.TickResult) {
		if tick%req.Every != 0 {
			return
		}
		frame := Frame{Type: FrameProgress, Tick: tick, Circles: f.Len(), Growing: res.Growing}
		if err := s.writeFrame(conn, frame); err != nil {
			cancel()
		}
	}

	sc, hit, err := s.runner.PackWithCacheInfo(ctx, req.Options, onTick)
	if err != nil {
		s.writeFrame(conn, errorFrame(err))
		return
	}
	s.writeFrame(conn, Frame{
		Type:      FrameDone,
		Tick:      sc.Ticks,
		Circles:   len(sc.Circles),
		Cached:    hit,
		SceneHash: pipeline.SceneHash(sc),
		Scene:     sc,
	})
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(f); err != nil {
		s.logger.Debug("websocket write failed", "error", err)
		return err
	}
	return nil
}

func errorFrame(err error) Frame {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return Frame{Type: FrameError, Code: string(code), Message: errors.UserMessage(err)}
}
