package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Dosada05/kicker-tournament/brackets"
	"github.com/Dosada05/kicker-tournament/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Табло открывают с любых устройств в зале.
		return true
	},
}

type WebSocketHandler struct {
	hub               *brackets.Hub
	tournamentService services.TournamentService
}

func NewWebSocketHandler(hub *brackets.Hub, ts services.TournamentService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
	}
}

// ServeWs обрабатывает WebSocket запросы для конкретного турнира.
// Клиент должен подключаться к /ws/tournaments/{name}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		http.Error(w, "Missing tournament name", http.StatusBadRequest)
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		log.Printf("Failed to upgrade connection for tournament %s: %v", name, err)
		return
	}

	roomID := brackets.RoomForTournament(name)
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}

	// Новый клиент сразу получает текущее состояние турнира.
	initial, err := json.Marshal(brackets.WebSocketMessage{
		Type:    brackets.MessageTournamentUpdated,
		Payload: tournament,
		RoomID:  roomID,
	})
	if err != nil {
		log.Printf("Failed to encode initial state for room %s: %v", roomID, err)
	} else {
		client.Send <- initial
	}

	if !h.hub.Join(client) {
		log.Printf("Hub stopped, rejecting client for room %s", roomID)
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	log.Printf("Client registered and pumps started for room %s", roomID)
}
