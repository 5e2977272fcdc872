// Package remote bridges the chart adapter to a browser-hosted
// charting widget: an HTTP server ships the embedded widget assets and
// a websocket carries imperative chart commands to connected clients.
package remote

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/gorilla/websocket"

	"github.com/raykavin/chartsync/pkg/logger"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

// command is one imperative widget instruction sent to clients
type command struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Server hosts the widget page and fans chart commands out to every
// connected client
type Server struct {
	sync.RWMutex
	port          int
	debug         bool
	log           logger.Logger
	clients       map[*websocket.Conn]struct{}
	upgrader      websocket.Upgrader
	indexHTML     *template.Template
	scriptContent string

	// last visible window reported by a client, in ms
	visibleFrom int64
	visibleTo   int64
	hasVisible  bool
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithPort sets the HTTP server port
func WithPort(port int) ServerOption {
	return func(s *Server) {
		s.port = port
	}
}

// WithDebug disables asset minification
func WithDebug() ServerOption {
	return func(s *Server) {
		s.debug = true
	}
}

// NewServer creates a chart server with the provided options
func NewServer(log logger.Logger, options ...ServerOption) (*Server, error) {
	s := &Server{
		port:    8080,
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	for _, option := range options {
		option(s)
	}

	var err error
	s.indexHTML, err = template.ParseFS(staticFiles, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	transpiled := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !s.debug,
		MinifyIdentifiers: !s.debug,
		MinifyWhitespace:  !s.debug,
	})
	if len(transpiled.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpiled.Errors)
	}
	s.scriptContent = string(transpiled.Code)

	return s, nil
}

// Start runs the HTTP server. Blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/chart.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, s.scriptContent)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/", s.handleIndex)

	s.log.Infof("chart available at http://localhost:%d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	if err := s.indexHTML.Execute(w, nil); err != nil {
		s.log.WithError(err).Error("failed to render chart page")
	}
}

// clientEvent is a message reported back by a client
type clientEvent struct {
	Type string `json:"type"`
	From int64  `json:"from"`
	To   int64  `json:"to"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("websocket upgrade failed")
		return
	}

	s.Lock()
	s.clients[conn] = struct{}{}
	s.Unlock()
	s.log.WithField("remote", conn.RemoteAddr().String()).Debug("chart client connected")

	go s.readLoop(conn)
}

func (s *Server) readLoop(conn *websocket.Conn) {
	defer func() {
		s.Lock()
		delete(s.clients, conn)
		s.Unlock()
		_ = conn.Close()
		s.log.Debug("chart client disconnected")
	}()

	for {
		var event clientEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		if event.Type == "visible_range" {
			s.Lock()
			s.visibleFrom, s.visibleTo = event.From, event.To
			s.hasVisible = true
			s.Unlock()
		}
	}
}

// ClientCount returns the number of connected chart clients
func (s *Server) ClientCount() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.clients)
}

// VisibleRange returns the last visible window a client reported
func (s *Server) VisibleRange() (from, to int64, ok bool) {
	s.RLock()
	defer s.RUnlock()
	return s.visibleFrom, s.visibleTo, s.hasVisible
}

// broadcast sends a command to every connected client, dropping
// connections that fail to accept it
func (s *Server) broadcast(cmd command) {
	s.Lock()
	defer s.Unlock()

	for conn := range s.clients {
		if err := conn.WriteJSON(cmd); err != nil {
			s.log.WithError(err).Warn("dropping unresponsive chart client")
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}
