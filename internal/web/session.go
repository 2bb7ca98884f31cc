package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/interact"
	"github.com/san-kum/fraktale/internal/logging"
	"github.com/san-kum/fraktale/internal/render"
)

// MaxCanvas bounds each side of the browser canvas in pixels.
const MaxCanvas = 4096

var ErrUnknownEvent = errors.New("unknown event")

// Event is one JSON message from the browser.
type Event struct {
	Type       string             `json:"type"`
	X          float64            `json:"x"`
	Y          float64            `json:"y"`
	DeltaY     float64            `json:"deltaY"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Algorithm  string             `json:"algorithm"`
	Params     map[string]float64 `json:"params"`
	Expression string             `json:"expression,omitempty"`
	Color      string             `json:"color"`
}

// Reply is a JSON message to the browser. Frames travel as binary PNG.
type Reply struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Session is the state of one browser connection: its own scene, viewport
// and surface. Nothing is shared between sessions.
type Session struct {
	scene    *fractal.Scene
	surface  *render.GGSurface
	renderer *render.Renderer
	ctl      *interact.Controller
	dirty    bool
}

func NewSession(cfg *config.Config) (*Session, error) {
	scene, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	surface, err := render.NewGGSurface(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	vp := cfg.NewViewport()
	r, err := render.New(surface, vp, render.WithLabels(cfg.Labels))
	if err != nil {
		surface.Close()
		return nil, err
	}
	s := &Session{
		scene:    scene,
		surface:  surface,
		renderer: r,
		ctl:      interact.NewController(vp),
		dirty:    true,
	}
	scene.OnChange(s.invalidate)
	s.ctl.OnChange(s.invalidate)
	return s, nil
}

func (s *Session) invalidate() { s.dirty = true }

func (s *Session) Close() error { return s.surface.Close() }

// Handle applies ev. It reports whether a new frame is due and, for an
// accepted fractal, the reply confirming it.
func (s *Session) Handle(ev Event) (bool, *Reply, error) {
	var reply *Reply
	switch ev.Type {
	case "down":
		s.ctl.PointerDown(ev.X, ev.Y)
	case "move":
		s.ctl.PointerMove(ev.X, ev.Y)
	case "up":
		s.ctl.PointerUp()
	case "leave":
		s.ctl.PointerLeave()
	case "wheel":
		s.ctl.Wheel(ev.DeltaY)
	case "reset":
		s.ctl.Reset()
	case "resize":
		if err := s.resize(ev.Width, ev.Height); err != nil {
			return false, nil, err
		}
	case "add":
		inst, err := s.scene.AddFractalExpr(fractal.Algorithm(ev.Algorithm), ev.Params, ev.Expression, ev.Color)
		if err != nil {
			return false, nil, err
		}
		reply = &Reply{Type: "added", Instance: inst.String()}
	default:
		return false, nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	due := s.dirty
	s.dirty = false
	return due, reply, nil
}

func (s *Session) resize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxCanvas || h > MaxCanvas {
		return fmt.Errorf("%w: canvas %dx%d", render.ErrSurfaceUnavailable, w, h)
	}
	if err := s.surface.Resize(w, h); err != nil {
		return err
	}
	s.ctl.Viewport().Resize(w, h)
	s.dirty = true
	return nil
}

// Frame renders the scene and returns it as PNG.
func (s *Session) Frame() ([]byte, render.Stats, error) {
	stats := s.renderer.Render(s.scene)
	s.dirty = false
	var buf bytes.Buffer
	if err := s.surface.EncodePNG(&buf); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// Serve reads events from c until the connection or ctx ends. Every state
// change is answered with a PNG frame, rejected input with an error reply.
func (s *Session) Serve(ctx context.Context, c *websocket.Conn) error {
	if err := s.sendFrame(ctx, c); err != nil {
		return err
	}
	for {
		var ev Event
		if err := wsjson.Read(ctx, c, &ev); err != nil {
			return err
		}
		due, reply, err := s.Handle(ev)
		if err != nil {
			logging.Logger().Debug("event rejected", "type", ev.Type, "err", err)
			if err := wsjson.Write(ctx, c, Reply{Type: "error", Message: err.Error()}); err != nil {
				return err
			}
			continue
		}
		if reply != nil {
			if err := wsjson.Write(ctx, c, reply); err != nil {
				return err
			}
		}
		if due {
			if err := s.sendFrame(ctx, c); err != nil {
				return err
			}
		}
	}
}

func (s *Session) sendFrame(ctx context.Context, c *websocket.Conn) error {
	frame, stats, err := s.Frame()
	if err != nil {
		return err
	}
	logging.Logger().Debug("frame", "bytes", len(frame), "primitives", stats.Primitives())
	return c.Write(ctx, websocket.MessageBinary, frame)
}
