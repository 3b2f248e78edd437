package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"refund-decision-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "refund_case_events"

// Toast is a transient notification shown to agents watching a case.
type Toast struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Variant string `json:"variant"` // success, error, warning, info
}

type envelope struct {
	Type string `json:"type"`
	Data Toast  `json:"data"`
}

type clusterMessage struct {
	Origin  string          `json:"origin"`
	CaseID  string          `json:"case_id"`
	Message json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: CaseID -> clients watching that case
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	// Closed when Run returns.
	done chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Optional.
	rdb *redis.Client
	// Identifies this instance so it ignores its own cluster messages.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CaseID] = append(h.clients[client.CaseID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"case_id": client.CaseID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register adds the client. Once the hub has stopped the client's Send is
// closed straight away so its pumps wind down.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		h.remove(c)
	}
}

// shutdown disconnects every client and releases blocked callers.
func (h *Hub) shutdown() {
	h.mu.Lock()
	for caseID, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, caseID)
	}
	close(h.done)
	h.mu.Unlock()
}

// ClientCount reports how many connections are watching the case.
func (h *Hub) ClientCount(caseID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[caseID])
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.CaseID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.CaseID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.CaseID]) == 0 {
		delete(h.clients, client.CaseID)
		h.logger.Info("Hub", "No clients left for case", map[string]interface{}{"case_id": client.CaseID})
	}
}

// Notify delivers a toast to every client watching the case, here and on
// other instances.
func (h *Hub) Notify(caseID uuid.UUID, toast Toast) {
	data, err := json.Marshal(envelope{Type: "toast", Data: toast})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode toast", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(caseID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:  h.instanceID,
			CaseID:  caseID.String(),
			Message: data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish toast to cluster", map[string]interface{}{"error": err.Error()})
		}
	}
}

// deliverLocal sends while holding the read lock; remove closes Send only
// under the write lock, so a registered client's channel is always open here.
func (h *Hub) deliverLocal(caseID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[caseID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"case_id": caseID})
			go h.Unregister(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}

		caseID, err := uuid.Parse(payload.CaseID)
		if err != nil {
			continue
		}
		h.deliverLocal(caseID, payload.Message)
	}
}
