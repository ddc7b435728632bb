package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fikuspikuss/chessboard-backend/internal/model"
	"github.com/fikuspikuss/chessboard-backend/internal/service"
)

type BoardController struct {
	boardService *service.BoardService
}

func NewBoardController(boardService *service.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	boardID, err := bc.boardService.CreateBoard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Board created",
		"board_id": boardID,
	})
}

func (bc *BoardController) GetBoardState(c *fiber.Ctx) error {
	boardID := c.Params("boardId")

	state, err := bc.boardService.GetBoardState(boardID)
	if err != nil {
		return boardError(c, err)
	}

	return c.JSON(state)
}

// GetCandidateMoves serves legal-move hints for the piece on the square named
// by the rank/file query parameters.
func (bc *BoardController) GetCandidateMoves(c *fiber.Ctx) error {
	boardID := c.Params("boardId")
	pos := model.Position{Rank: c.QueryInt("rank"), File: c.QueryInt("file")}

	moves, err := bc.boardService.CandidateMoves(boardID, pos)
	if err != nil {
		return boardError(c, err)
	}

	return c.JSON(fiber.Map{
		"position": pos,
		"moves":    moves,
	})
}

func (bc *BoardController) MakeMove(c *fiber.Ctx) error {
	boardID := c.Params("boardId")

	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move payload",
		})
	}

	record, err := bc.boardService.HandleMove(boardID, move)
	if err != nil {
		return boardError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Move executed",
		"move":    record,
	})
}

func (bc *BoardController) GetMoveLog(c *fiber.Ctx) error {
	boardID := c.Params("boardId")

	moves, err := bc.boardService.MoveLog(boardID)
	if err != nil {
		if errors.Is(err, service.ErrJournalingDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return boardError(c, err)
	}

	return c.JSON(fiber.Map{
		"boardId": boardID,
		"moves":   moves,
	})
}

// boardError maps the typed board errors onto HTTP statuses. Everything in
// the taxonomy is client-recoverable; only unknown failures become 500s.
func boardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, model.ErrNoPieceAtSource):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, model.ErrPositionOutOfRange),
		errors.Is(err, model.ErrIllegalMove):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
