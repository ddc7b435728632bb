package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/fikuspikuss/chessboard-backend/internal/model"
)

// ErrBoardNotFound is returned for operations on an unknown board ID.
var ErrBoardNotFound = errors.New("board not found")

const (
	defaultIdleTTL = time.Hour
	reapInterval   = time.Minute
)

// BoardManager owns every board session, keyed by ID. A janitor goroutine
// reaps sessions that have been idle past the TTL and have no observers left.
type BoardManager struct {
	sessions map[string]*boardSession
	mu       sync.RWMutex
	idleTTL  time.Duration
}

func NewBoardManager() *BoardManager {
	bm := &BoardManager{
		sessions: make(map[string]*boardSession),
		idleTTL:  defaultIdleTTL,
	}

	go bm.reapLoop()

	return bm
}

func (bm *BoardManager) reapLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for range ticker.C {
		bm.reapIdle(time.Now())
	}
}

// reapIdle drops idle sessions and reports how many it removed. Sessions with
// live connections are never reaped.
func (bm *BoardManager) reapIdle(now time.Time) int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	reaped := 0
	for id, session := range bm.sessions {
		if session.connections.count() > 0 {
			continue
		}
		if session.idleSince(now) > bm.idleTTL {
			delete(bm.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		log.Printf("reaped %d idle board session(s)", reaped)
	}
	return reaped
}

func (bm *BoardManager) CreateBoard(boardID string) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.sessions[boardID]; exists {
		return errors.New("board already exists")
	}

	bm.sessions[boardID] = newBoardSession(boardID, time.Now())
	return nil
}

func (bm *BoardManager) getSession(boardID string) (*boardSession, error) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	session, exists := bm.sessions[boardID]
	if !exists {
		return nil, ErrBoardNotFound
	}
	return session, nil
}

func (bm *BoardManager) HasBoard(boardID string) bool {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	_, exists := bm.sessions[boardID]
	return exists
}

func (bm *BoardManager) GetBoardState(boardID string) (BoardState, error) {
	session, err := bm.getSession(boardID)
	if err != nil {
		return BoardState{}, err
	}
	return session.State(), nil
}

func (bm *BoardManager) MakeMove(boardID string, move model.SimpleMove) (model.MoveRecord, error) {
	session, err := bm.getSession(boardID)
	if err != nil {
		return model.MoveRecord{}, err
	}
	return session.MakeMove(move)
}

func (bm *BoardManager) CandidateMoves(boardID string, pos model.Position) ([]model.Position, error) {
	session, err := bm.getSession(boardID)
	if err != nil {
		return nil, err
	}
	return session.CandidateMoves(pos)
}

func (bm *BoardManager) RegisterConnection(boardID string, clientID string, conn *websocket.Conn) error {
	session, err := bm.getSession(boardID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(clientID, conn)
}

func (bm *BoardManager) UnregisterConnection(boardID string, clientID string) {
	session, err := bm.getSession(boardID)
	if err != nil {
		return
	}
	session.UnregisterConnection(clientID)
}
