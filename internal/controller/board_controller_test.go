package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/fikuspikuss/chessboard-backend/internal/middleware"
	"github.com/fikuspikuss/chessboard-backend/internal/model"
	"github.com/fikuspikuss/chessboard-backend/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	boardService := service.NewBoardService(service.NewBoardManager(), nil)
	boardController := NewBoardController(boardService)

	app := fiber.New()
	api := app.Group("/api", middleware.EnsureClientID())
	boardRoutes := api.Group("/board")
	boardRoutes.Post("/create", boardController.CreateBoard)
	boardRoutes.Get("/:boardId", boardController.GetBoardState)
	boardRoutes.Get("/:boardId/moves", boardController.GetCandidateMoves)
	boardRoutes.Post("/:boardId/move", boardController.MakeMove)
	boardRoutes.Get("/:boardId/log", boardController.GetMoveLog)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("X-Client-ID", "test-client")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createBoard(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doRequest(t, app, fiber.MethodPost, "/api/board/create", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("create board: status %d", resp.StatusCode)
	}
	var body struct {
		BoardID string `json:"board_id"`
	}
	decodeBody(t, resp, &body)
	if body.BoardID == "" {
		t.Fatal("create board returned empty board_id")
	}
	return body.BoardID
}

func TestCreateBoardRequiresClientID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/board/create", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGetBoardState(t *testing.T) {
	app := newTestApp(t)
	boardID := createBoard(t, app)

	resp := doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var state service.BoardState
	decodeBody(t, resp, &state)
	if state.BoardID != boardID {
		t.Errorf("boardId = %q, want %q", state.BoardID, boardID)
	}
	if len(state.Squares) != 32 {
		t.Errorf("got %d occupied squares, want 32", len(state.Squares))
	}

	resp = doRequest(t, app, fiber.MethodGet, "/api/board/no-such-board", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown board status = %d, want 404", resp.StatusCode)
	}
}

func TestGetCandidateMoves(t *testing.T) {
	app := newTestApp(t)
	boardID := createBoard(t, app)

	resp := doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID+"/moves?rank=1&file=2", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Position model.Position   `json:"position"`
		Moves    []model.Position `json:"moves"`
	}
	decodeBody(t, resp, &body)
	want := model.CandidateMoves(model.Knight, model.White, model.Position{Rank: 1, File: 2})
	if diff := cmp.Diff(want, body.Moves); diff != "" {
		t.Errorf("hint set mismatch (-want +got):\n%s", diff)
	}

	// Empty square
	resp = doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID+"/moves?rank=4&file=4", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("empty square status = %d, want 404", resp.StatusCode)
	}

	// Off-board square
	resp = doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID+"/moves?rank=9&file=1", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("off-board square status = %d, want 400", resp.StatusCode)
	}
}

func TestMakeMove(t *testing.T) {
	app := newTestApp(t)
	boardID := createBoard(t, app)

	tests := []struct {
		name       string
		move       model.SimpleMove
		wantStatus int
	}{
		{
			name:       "pawn double step",
			move:       model.SimpleMove{From: model.Position{Rank: 2, File: 5}, To: model.Position{Rank: 4, File: 5}},
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "illegal rook move",
			move:       model.SimpleMove{From: model.Position{Rank: 1, File: 1}, To: model.Position{Rank: 2, File: 2}},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "destination off the board",
			move:       model.SimpleMove{From: model.Position{Rank: 1, File: 1}, To: model.Position{Rank: 9, File: 1}},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "empty source square",
			move:       model.SimpleMove{From: model.Position{Rank: 5, File: 5}, To: model.Position{Rank: 6, File: 5}},
			wantStatus: fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, fiber.MethodPost, "/api/board/"+boardID+"/move", tt.move)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}

	// The successful move above must be visible in the state.
	resp := doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID, nil)
	var state service.BoardState
	decodeBody(t, resp, &state)
	if state.LastMove == nil || state.LastMove.To != (model.Position{Rank: 4, File: 5}) {
		t.Errorf("state.LastMove = %v, want move to e4", state.LastMove)
	}
}

func TestMoveLogDisabled(t *testing.T) {
	app := newTestApp(t)
	boardID := createBoard(t, app)

	resp := doRequest(t, app, fiber.MethodGet, "/api/board/"+boardID+"/log", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404 when journaling is disabled", resp.StatusCode)
	}
}
