// Package devtool provides the development-mode navigation inspector:
// a WebSocket endpoint that streams the route table and live navigation
// events to connected tooling (browser panels, editor plugins).
package devtool

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Message types sent to inspector clients.
const (
	MessageTypeRoutes     = "routes"
	MessageTypeNavigation = "navigation"
)

// RoutesMessage is sent once per connection, immediately after the
// upgrade, so the client can label navigation events.
type RoutesMessage struct {
	Type   string       `json:"type"`
	Routes []RouteEntry `json:"routes"`
}

// RouteEntry is one route table row in a RoutesMessage.
type RouteEntry struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Source  string `json:"source,omitempty"`
}

// NavigationMessage is broadcast for every navigation that runs through
// the inspector middleware, successful or not.
type NavigationMessage struct {
	Type     string         `json:"type"`
	Op       string         `json:"op"`
	Path     string         `json:"path,omitempty"`
	RouteID  string         `json:"routeId,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
	Depth    int            `json:"depth"`
	EntryKey string         `json:"entryKey,omitempty"`
	Error    string         `json:"error,omitempty"`
	At       time.Time      `json:"at"`
}

// Inspector manages WebSocket connections for the navigation inspector.
type Inspector struct {
	registry *router.Registry
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewInspector creates an inspector. The registry may be nil, in which
// case clients get an empty route table greeting.
func NewInspector(registry *router.Registry) *Inspector {
	return &Inspector{
		registry: registry,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (i *Inspector) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := i.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	i.mu.Lock()
	i.clients[conn] = true
	i.mu.Unlock()

	i.sendRoutes(conn)

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	i.mu.Lock()
	delete(i.clients, conn)
	i.mu.Unlock()
	conn.Close()
}

// Middleware returns navigation middleware that broadcasts every
// navigation outcome to connected clients.
func (i *Inspector) Middleware() navigator.Middleware {
	return navigator.MiddlewareFunc(func(ev *navigator.Event, next func() error) error {
		err := next()
		i.NotifyNavigation(ev, err)
		return err
	})
}

// NotifyNavigation broadcasts a navigation outcome to all clients.
func (i *Inspector) NotifyNavigation(ev *navigator.Event, err error) {
	msg := NavigationMessage{
		Type:     MessageTypeNavigation,
		Op:       ev.Op,
		Path:     ev.Path,
		Depth:    ev.Depth,
		EntryKey: ev.EntryKey,
		At:       time.Now().UTC(),
	}
	if ev.Route != nil {
		msg.RouteID = ev.Route.RouteID
		msg.Params = ev.Route.Params
	}
	if err != nil {
		msg.Error = err.Error()
	}
	i.broadcast(msg)
}

// sendRoutes sends the route table greeting to one client.
func (i *Inspector) sendRoutes(conn *websocket.Conn) {
	msg := RoutesMessage{Type: MessageTypeRoutes, Routes: []RouteEntry{}}
	if i.registry != nil {
		for _, def := range i.registry.Routes() {
			msg.Routes = append(msg.Routes, RouteEntry{
				ID:      def.ID,
				Pattern: def.Pattern,
				Source:  def.Source,
			})
		}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	conn.WriteMessage(websocket.TextMessage, data)
}

// broadcast sends a message to all connected clients.
func (i *Inspector) broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	i.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(i.clients))
	for client := range i.clients {
		clients = append(clients, client)
	}
	i.mu.RUnlock()

	for _, client := range clients {
		err := client.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			i.mu.Lock()
			delete(i.clients, client)
			i.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (i *Inspector) ClientCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients)
}

// Close closes all client connections.
func (i *Inspector) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()

	for client := range i.clients {
		client.Close()
		delete(i.clients, client)
	}
}
