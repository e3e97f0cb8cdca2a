package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	errx "krishi-sakhi-backend/internal/core/error"
	"krishi-sakhi-backend/internal/models"
	"krishi-sakhi-backend/internal/session"
	logx "krishi-sakhi-backend/pkg/logger"
)

const (
	sessionChannelPrefix = "session_updates:"
	writeWait            = 10 * time.Second
)

// ErrNoClient is returned when a voice command has nobody to deliver it to.
var ErrNoClient = errors.New("no websocket client connected for session")

// SessionSource resolves the session a websocket client asks for.
type SessionSource interface {
	Get(id uuid.UUID) (*session.Session, error)
}

// Compile-time interface check.
var _ session.Publisher = (*Hub)(nil)

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Hub pushes session, weather and voice frames to browser clients. With a
// redis client session frames go through pub/sub so any instance holding the
// connection can deliver them; without one they are delivered in-process.
// Weather frames are always local: every instance runs its own poller.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*conn
	cancelFuncs map[uuid.UUID]context.CancelFunc
	weather     models.WeatherSnapshot

	redisPub *redis.Client
	redisSub *redis.Client
	sessions SessionSource
	upgrader websocket.Upgrader

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub builds a hub. publish and subscribe may both be nil.
func NewHub(publish, subscribe *redis.Client, frontendURL string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	allowed := strings.TrimRight(frontendURL, "/")

	h := &Hub{
		connections: make(map[uuid.UUID][]*conn),
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
		weather:     models.WeatherSnapshot{Loading: true},
		redisPub:    publish,
		redisSub:    subscribe,
		ctx:         ctx,
		cancel:      cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowed
		},
	}

	return h
}

// SetSessions sets the lookup used to validate incoming connections.
func (h *Hub) SetSessions(sessions SessionSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = sessions
}

func (h *Hub) distributed() bool {
	return h.redisPub != nil && h.redisSub != nil
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.URL.Query().Get("session_id"))
	if err != nil {
		http.Error(w, "invalid session_id", http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	sessions := h.sessions
	h.mu.RUnlock()
	if sessions == nil {
		http.Error(w, "sessions unavailable", http.StatusServiceUnavailable)
		return
	}

	s, err := sessions.Get(sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID.String()).Msg("websocket upgrade failed")
		return
	}

	c := &conn{ws: ws}
	h.registerConnection(sessionID, c)

	h.mu.RLock()
	weather := h.weather
	h.mu.RUnlock()
	if data, err := json.Marshal(models.WSMessage{
		Type:      models.WSConnected,
		SessionID: sessionID.String(),
		Payload:   models.ConnectedPayload{Session: s.View(), Weather: weather},
	}); err == nil {
		c.write(data)
	}

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(sessionID, c)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(sessionID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[sessionID] = append(h.connections[sessionID], c)

	// Start pub/sub subscription on the first connection for this session
	if h.distributed() && len(h.connections[sessionID]) == 1 {
		ctx, cancel := context.WithCancel(h.ctx)
		h.cancelFuncs[sessionID] = cancel
		go h.subscribe(ctx, sessionChannelPrefix+sessionID.String(), func(data []byte) {
			h.deliver(sessionID, data)
		})
	}

	logx.Info().Str("session_id", sessionID.String()).Int("connections", len(h.connections[sessionID])).Msg("websocket connected")
}

func (h *Hub) unregisterConnection(sessionID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.ws.Close()

	conns := h.connections[sessionID]
	for i, existing := range conns {
		if existing == c {
			h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[sessionID]) == 0 {
		delete(h.connections, sessionID)
		if cancel, ok := h.cancelFuncs[sessionID]; ok {
			cancel()
			delete(h.cancelFuncs, sessionID)
		}
	}

	logx.Info().Str("session_id", sessionID.String()).Msg("websocket disconnected")
}

func (h *Hub) subscribe(ctx context.Context, channel string, deliver func([]byte)) {
	pubsub := h.redisSub.Subscribe(ctx, channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			deliver([]byte(msg.Payload))
		}
	}
}

// broadcast writes data to every local connection of one session and
// reports how many received it.
func (h *Hub) broadcast(sessionID uuid.UUID, data []byte) int {
	h.mu.RLock()
	conns := append([]*conn(nil), h.connections[sessionID]...)
	h.mu.RUnlock()

	delivered := 0
	for _, c := range conns {
		if err := c.write(data); err != nil {
			logx.Debug().Err(err).Str("session_id", sessionID.String()).Msg("websocket write failed")
			continue
		}
		delivered++
	}
	return delivered
}

// deliver hands a session frame to local connections. A session_ended
// frame also closes them.
func (h *Hub) deliver(sessionID uuid.UUID, data []byte) int {
	n := h.broadcast(sessionID, data)

	var head struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(data, &head) == nil && head.Type == models.WSSessionEnded {
		h.closeSession(sessionID)
	}
	return n
}

// closeSession closes every local connection of one session.
func (h *Hub) closeSession(sessionID uuid.UUID) {
	h.mu.Lock()
	conns := h.connections[sessionID]
	delete(h.connections, sessionID)
	if cancel, ok := h.cancelFuncs[sessionID]; ok {
		cancel()
		delete(h.cancelFuncs, sessionID)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
			time.Now().Add(time.Second))
		c.ws.Close()
	}
}

func (h *Hub) broadcastAll(data []byte) {
	h.mu.RLock()
	ids := make([]uuid.UUID, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.broadcast(id, data)
	}
}

// publish routes a frame for one session and returns the number of receivers.
func (h *Hub) publish(sessionID uuid.UUID, msg models.WSMessage) (int, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	if !h.distributed() {
		return h.deliver(sessionID, data), nil
	}

	ctx, cancel := context.WithTimeout(h.ctx, writeWait)
	defer cancel()
	n, err := h.redisPub.Publish(ctx, sessionChannelPrefix+sessionID.String(), data).Result()
	if err != nil {
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

// PublishSession pushes a session_update frame.
func (h *Hub) PublishSession(view models.SessionView) {
	if _, err := h.publish(view.ID, models.WSMessage{
		Type:      models.WSSessionUpdate,
		SessionID: view.ID.String(),
		Payload:   view,
	}); err != nil {
		logx.Error().Err(err).Str("session_id", view.ID.String()).Msg("failed to publish session update")
	}
}

// SendVoiceCommand asks the session's browser to start or stop dictation.
// It fails when no client is listening, so the toggle can report it.
func (h *Hub) SendVoiceCommand(sessionID uuid.UUID, cmd models.VoiceCommand) error {
	n, err := h.publish(sessionID, models.WSMessage{
		Type:      models.WSVoiceCommand,
		SessionID: sessionID.String(),
		Payload:   cmd,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoClient
	}
	return nil
}

// EndSession tells the session's clients it is gone and closes their
// connections.
func (h *Hub) EndSession(sessionID uuid.UUID) {
	if _, err := h.publish(sessionID, models.WSMessage{
		Type:      models.WSSessionEnded,
		SessionID: sessionID.String(),
	}); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to publish session end")
		h.closeSession(sessionID)
	}
}

// PublishWeather pushes a weather_update frame to every local client. It is
// registered as a weather poller listener.
func (h *Hub) PublishWeather(snapshot models.WeatherSnapshot) {
	h.mu.Lock()
	h.weather = snapshot
	h.mu.Unlock()

	data, err := json.Marshal(models.WSMessage{Type: models.WSWeatherUpdate, Payload: snapshot})
	if err != nil {
		return
	}
	h.broadcastAll(data)
}

// ConnectionCount returns the number of local connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, conns := range h.connections {
		n += len(conns)
	}
	return n
}

// Close stops subscriptions and closes every connection.
func (h *Hub) Close() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conns := range h.connections {
		for _, c := range conns {
			c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			c.ws.Close()
		}
		delete(h.connections, id)
	}
	for id, cancel := range h.cancelFuncs {
		cancel()
		delete(h.cancelFuncs, id)
	}
}
