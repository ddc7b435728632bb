package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/fikuspikuss/chessboard-backend/internal/model"
	"github.com/fikuspikuss/chessboard-backend/internal/ws"
)

// sessionConnections holds the live WebSocket connections for one board.
type sessionConnections struct {
	connections map[string]*websocket.Conn // clientID -> connection
	mu          sync.RWMutex
}

func newSessionConnections() *sessionConnections {
	return &sessionConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func (sc *sessionConnections) count() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.connections)
}

// boardSession wraps one board together with the mutex that serializes moves
// on it, the connections observing it, and the activity timestamps the
// janitor reaps by. The board itself is not concurrency-safe.
type boardSession struct {
	id          string
	mu          sync.Mutex
	board       *model.Board
	lastMove    *model.MoveRecord
	connections *sessionConnections
	createdAt   time.Time
	lastActive  time.Time
}

// BoardState is the client-facing view of one session: the ordered occupied
// squares plus the last executed move.
type BoardState struct {
	BoardID  string            `json:"boardId"`
	Squares  []model.Square    `json:"squares"`
	LastMove *model.MoveRecord `json:"lastMove"`
}

func newBoardSession(id string, now time.Time) *boardSession {
	return &boardSession{
		id:          id,
		board:       model.NewBoard(),
		connections: newSessionConnections(),
		createdAt:   now,
		lastActive:  now,
	}
}

// touch must be called with s.mu held.
func (s *boardSession) touch() {
	s.lastActive = time.Now()
}

func (s *boardSession) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// MakeMove applies one move transition to the board and broadcasts fresh
// state to every observer on success. Failures propagate the board's error
// unchanged and leave the board as it was.
func (s *boardSession) MakeMove(move model.SimpleMove) (model.MoveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.board.MovePiece(move.From, move.To)
	if err != nil {
		return model.MoveRecord{}, err
	}
	s.lastMove = &record
	s.touch()

	go s.broadcastState()
	return record, nil
}

func (s *boardSession) State() BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return BoardState{
		BoardID:  s.id,
		Squares:  s.board.Snapshot(),
		LastMove: s.lastMove,
	}
}

// CandidateMoves returns the hint set for the piece standing on pos, so a
// client can show reachable squares before committing a move.
func (s *boardSession) CandidateMoves(pos model.Position) ([]model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !pos.InRange() {
		return nil, fmt.Errorf("%w: (%d,%d)", model.ErrPositionOutOfRange, pos.Rank, pos.File)
	}
	piece := s.board.PieceAt(pos)
	if piece == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNoPieceAtSource, pos)
	}
	s.touch()
	return piece.CandidateMoves(), nil
}

func (s *boardSession) RegisterConnection(clientID string, conn *websocket.Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[clientID]; exists {
		// Keep the existing connection and reject the new one.
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil // rejecting a duplicate is not an error
	}
	s.connections.connections[clientID] = conn
	s.connections.mu.Unlock()

	s.mu.Lock()
	s.touch()
	s.mu.Unlock()

	// Send initial state
	go s.broadcastState()
	return nil
}

func (s *boardSession) UnregisterConnection(clientID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	delete(s.connections.connections, clientID)
}

func (s *boardSession) broadcastState() {
	payload, err := json.Marshal(s.State())
	if err != nil {
		log.Printf("marshal board state: %v", err)
		return
	}

	// Snapshot the connections, then write without holding the lock.
	s.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(s.connections.connections))
	for clientID, conn := range s.connections.connections {
		active[clientID] = conn
	}
	s.connections.mu.RUnlock()

	for clientID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeBoardState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to client %s: %v", clientID, err)
			s.connections.mu.Lock()
			delete(s.connections.connections, clientID)
			s.connections.mu.Unlock()
		}
	}
}
