package controller

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"

	"github.com/iSuccessHUB/assetshield-app-sub000/models"
)

// LeadHub fans captured leads out to connected dashboard sessions, keyed by
// customer so tenants only see their own leads.
type LeadHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*websocket.Conn]bool
	logger  *log.Logger
}

func NewLeadHub(logger *log.Logger) *LeadHub {
	return &LeadHub{
		clients: make(map[uint]map[*websocket.Conn]bool),
		logger:  logger,
	}
}

func (h *LeadHub) register(customerID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[customerID] == nil {
		h.clients[customerID] = make(map[*websocket.Conn]bool)
	}
	h.clients[customerID][conn] = true
}

func (h *LeadHub) unregister(customerID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[customerID], conn)
	if len(h.clients[customerID]) == 0 {
		delete(h.clients, customerID)
	}
}

// Broadcast pushes a new lead to the tenant's connected dashboards.
// Slow or broken connections are dropped, never waited on.
func (h *LeadHub) Broadcast(lead *models.ClientLead) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": "lead_captured",
		"lead": lead,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[lead.CustomerID]))
	for conn := range h.clients[lead.CustomerID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Printf("dropping lead feed connection for customer %d: %v", lead.CustomerID, err)
			h.unregister(lead.CustomerID, conn)
			conn.Close()
		}
	}
}

// HandleLeadFeedWS serves the dashboard's live lead feed. The customer id is
// resolved before the upgrade by the JWT middleware.
func (h *LeadHub) HandleLeadFeedWS(customerID uint) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		h.register(customerID, conn)
		defer func() {
			h.unregister(customerID, conn)
			conn.Close()
		}()

		// Reads only serve to detect disconnects
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
