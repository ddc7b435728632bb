package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/fikuspikuss/chessboard-backend/internal/journal"
	"github.com/fikuspikuss/chessboard-backend/internal/model"
)

// ErrJournalingDisabled is returned by MoveLog when the server runs without a
// journal.
var ErrJournalingDisabled = errors.New("journaling disabled")

// BoardService is the facade the controllers talk to. It owns the journal
// handle; the board core knows nothing about persistence.
type BoardService struct {
	boardManager *BoardManager
	journal      *journal.Journal // nil when journaling is disabled
}

func NewBoardService(boardManager *BoardManager, journal *journal.Journal) *BoardService {
	return &BoardService{
		boardManager: boardManager,
		journal:      journal,
	}
}

// CreateBoard sets up a fresh board in the standard starting layout and
// returns its ID.
func (bs *BoardService) CreateBoard() (string, error) {
	boardID := uuid.New().String()

	if err := bs.boardManager.CreateBoard(boardID); err != nil {
		return "", fmt.Errorf("failed to create board: %w", err)
	}

	return boardID, nil
}

func (bs *BoardService) GetBoardState(boardID string) (BoardState, error) {
	return bs.boardManager.GetBoardState(boardID)
}

// CandidateMoves returns the pseudo-legal hint set for the piece on pos.
func (bs *BoardService) CandidateMoves(boardID string, pos model.Position) ([]model.Position, error) {
	return bs.boardManager.CandidateMoves(boardID, pos)
}

// HandleMove applies the move and, when a journal is attached, records it.
// A journal write failure does not undo the move; it is logged and the move
// stands.
func (bs *BoardService) HandleMove(boardID string, move model.SimpleMove) (model.MoveRecord, error) {
	record, err := bs.boardManager.MakeMove(boardID, move)
	if err != nil {
		return model.MoveRecord{}, err
	}

	if bs.journal != nil {
		if err := bs.journal.Append(boardID, record); err != nil {
			log.Printf("journal move for board %s: %v", boardID, err)
		}
	}

	return record, nil
}

// MoveLog returns the persisted move history for boardID.
func (bs *BoardService) MoveLog(boardID string) ([]model.MoveRecord, error) {
	if bs.journal == nil {
		return nil, ErrJournalingDisabled
	}
	if !bs.boardManager.HasBoard(boardID) {
		return nil, ErrBoardNotFound
	}
	return bs.journal.Moves(boardID)
}

func (bs *BoardService) RegisterConnection(boardID string, clientID string, conn *websocket.Conn) error {
	return bs.boardManager.RegisterConnection(boardID, clientID, conn)
}

func (bs *BoardService) UnregisterConnection(boardID string, clientID string) {
	bs.boardManager.UnregisterConnection(boardID, clientID)
}
