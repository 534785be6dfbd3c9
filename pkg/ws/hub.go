// Package ws adalah transport notifikasi realtime (websocket) untuk
// menyiarkan perubahan status kehadiran ke semua client yang terhubung.
// Inti aplikasi hanya mengenal port StatusNotifier di package service;
// hub ini memenuhinya tanpa jaminan pengiriman apa pun.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	EventStatusChanged = "status-changed"
	EventCheckedIn     = "user-checked-in"
	EventCheckedOut    = "user-checked-out"
)

type Event struct {
	Kind      string    `json:"event"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// Handler dipasang di rute /ws lewat websocket.New.
func (h *Hub) Handler(conn *websocket.Conn) {
	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 16),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.WithField("client_id", c.id).Info("Websocket client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Baca sampai client menutup koneksi; pesan masuk diabaikan.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	close(c.send)
	<-done
	h.logger.WithField("client_id", c.id).Info("Websocket client disconnected")
}

// broadcast mengirim event ke semua client. Tanpa client, event dibuang.
// Client yang buffer kirimnya penuh dilewati, tidak pernah memblokir.
func (h *Hub) broadcast(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.WithError(err).Warn("Gagal encode event websocket")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (h *Hub) NotifyStatusChanged(userID string, status string, timestamp time.Time) {
	h.broadcast(Event{Kind: EventStatusChanged, UserID: userID, Status: status, Timestamp: timestamp})
}

func (h *Hub) NotifyCheckIn(userID string, timestamp time.Time) {
	h.broadcast(Event{Kind: EventCheckedIn, UserID: userID, Timestamp: timestamp})
}

func (h *Hub) NotifyCheckOut(userID string, timestamp time.Time) {
	h.broadcast(Event{Kind: EventCheckedOut, UserID: userID, Timestamp: timestamp})
}
