// Package web is the browser host: an HTTP page whose canvas forwards
// pointer and wheel events over a websocket and shows the PNG frames the
// server renders in reply.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/san-kum/fraktale/internal/config"
	"github.com/san-kum/fraktale/internal/fractal"
	"github.com/san-kum/fraktale/internal/logging"
)

//go:embed static
var static embed.FS

// AlgorithmInfo describes one entry of the page's algorithm dropdown.
type AlgorithmInfo struct {
	Value      fractal.Algorithm `json:"value"`
	Label      string            `json:"label"`
	Keys       []string          `json:"keys"`
	Expression bool              `json:"expression,omitempty"`
}

type Server struct {
	cfg            *config.Config
	originPatterns []string
}

type Option func(*Server)

// WithOriginPatterns allows cross-origin websocket clients, see
// websocket.AcceptOptions.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) { s.originPatterns = patterns }
}

func NewServer(cfg *config.Config, opts ...Option) *Server {
	s := &Server{cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))
	mux.HandleFunc("/api/algorithms", s.handleAlgorithms)
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

// Algorithms lists the dropdown options first, then the remaining
// algorithms, each with its form keys.
func Algorithms() []AlgorithmInfo {
	var out []AlgorithmInfo
	seen := make(map[fractal.Algorithm]bool)
	add := func(a fractal.Algorithm, label string) {
		keys, err := fractal.RequiredKeys(a)
		if err != nil {
			return
		}
		out = append(out, AlgorithmInfo{Value: a, Label: label, Keys: keys, Expression: fractal.AcceptsExpression(a)})
		seen[a] = true
	}
	for _, o := range fractal.Options() {
		add(o.Value, o.Label)
	}
	for _, a := range fractal.Algorithms() {
		if !seen[a] {
			add(a, a.String())
		}
	}
	return out
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Algorithms()); err != nil {
		logging.Logger().Warn("encode algorithms", "err", err)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		logging.Logger().Warn("websocket accept", "err", err)
		return
	}
	defer c.CloseNow()

	sess, err := NewSession(s.cfg)
	if err != nil {
		logging.Logger().Error("new session", "err", err)
		c.Close(websocket.StatusInternalError, "session unavailable")
		return
	}
	defer sess.Close()

	logging.Logger().Info("session started", "remote", r.RemoteAddr)
	err = sess.Serve(r.Context(), c)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		logging.Logger().Info("session ended", "remote", r.RemoteAddr)
	default:
		if !errors.Is(err, context.Canceled) {
			logging.Logger().Warn("session failed", "remote", r.RemoteAddr, "err", err)
		}
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logging.Logger().Info("listening", "url", "http://"+addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
