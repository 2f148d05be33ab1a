package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/covnav/backend/internal/chat"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadTimeout  = 5 * time.Minute
	wsReadLimit    = 1 << 20
)

// handleChatWS serves a live chat transport: each inbound frame is one
// chat.Request, each outbound frame either the chat.Response or an error
// payload. The same orchestrator path as POST /api/chat runs underneath,
// so session semantics are identical across transports.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var req chat.Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return
			}
			if !writeWSError(conn, "invalid_client_message", err.Error()) {
				return
			}
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		if strings.TrimSpace(req.Message) == "" {
			if !writeWSError(conn, "empty_message", "Message cannot be empty") {
				return
			}
			continue
		}

		res, err := s.orchestrator.HandleTurn(r.Context(), req)
		if err != nil {
			if !writeWSError(conn, "chat_failed", err.Error()) {
				return
			}
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(res); err != nil {
			return
		}
	}
}

func writeWSError(conn *websocket.Conn, code, message string) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(errorResponse{Error: message, Code: code}) == nil
}
