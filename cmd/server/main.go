package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/fikuspikuss/chessboard-backend/internal/controller"
	"github.com/fikuspikuss/chessboard-backend/internal/journal"
	"github.com/fikuspikuss/chessboard-backend/internal/middleware"
	"github.com/fikuspikuss/chessboard-backend/internal/service"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	journalDir := flag.String("journal", "", "move journal directory (empty = platform default, \"off\" = disabled)")
	allowOrigins := flag.String("origins", "http://localhost:5173", "allowed CORS origins")
	flag.Parse()

	var moveJournal *journal.Journal
	if *journalDir != "off" {
		dir := *journalDir
		if dir == "" {
			var err error
			dir, err = journal.DefaultDir()
			if err != nil {
				log.Fatalf("resolve journal dir: %v", err)
			}
		}
		var err error
		moveJournal, err = journal.Open(dir)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		defer moveJournal.Close()
		log.Printf("move journal at %s", dir)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *allowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Request logging
	app.Use(func(c *fiber.Ctx) error {
		log.Printf("%s %s", c.Method(), c.Path())
		return c.Next()
	})

	// Initialize services
	boardManager := service.NewBoardManager()
	boardService := service.NewBoardService(boardManager, moveJournal)

	// Initialize controllers
	boardController := controller.NewBoardController(boardService)
	wsController := controller.NewWebSocketController(boardService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Use("/ws/board/:boardId", middleware.WebSocketUpgrade())
	app.Get("/ws/board/:boardId", websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	boardRoutes := api.Group("/board")
	boardRoutes.Post("/create", boardController.CreateBoard)
	boardRoutes.Get("/:boardId", boardController.GetBoardState)
	boardRoutes.Get("/:boardId/moves", boardController.GetCandidateMoves)
	boardRoutes.Post("/:boardId/move", boardController.MakeMove)
	boardRoutes.Get("/:boardId/log", boardController.GetMoveLog)

	log.Fatal(app.Listen(*addr))
}
