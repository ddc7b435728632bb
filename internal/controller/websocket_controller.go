package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/fikuspikuss/chessboard-backend/internal/model"
	"github.com/fikuspikuss/chessboard-backend/internal/service"
	"github.com/fikuspikuss/chessboard-backend/internal/ws"
)

type WebSocketController struct {
	boardService *service.BoardService
}

func NewWebSocketController(boardService *service.BoardService) *WebSocketController {
	return &WebSocketController{
		boardService: boardService,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID := c.Params("boardId")
	clientID := c.Locals("clientID").(string)

	// Register this connection with the board session
	if err := wsc.boardService.RegisterConnection(boardID, clientID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.Close()
		return
	}

	// Message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Printf("parse error: %v", err)
				continue
			}

			if err := wsc.handleMessage(boardID, msg); err != nil {
				log.Printf("handle error: %v", err)
				wsc.sendError(c, err.Error())
			}
		}
	}

	// Clean up when connection closes
	wsc.boardService.UnregisterConnection(boardID, clientID)
}

// handleMessage dispatches one incoming message. Move failures surface as
// error messages to the sender; the session broadcasts fresh state itself on
// success.
func (wsc *WebSocketController) handleMessage(boardID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.boardService.HandleMove(boardID, move)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(map[string]string{"error": errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
