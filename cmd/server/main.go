package main

import (
	"os"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ntammineni5/pictionary/internal/room"
	"github.com/ntammineni5/pictionary/internal/words"
	"github.com/ntammineni5/pictionary/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		logger.SetLevel(lvl)
	}

	bank := words.DefaultBank()
	store := room.NewStore(bank)

	if raw := os.Getenv("ROUND_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			logger.Fatal("invalid ROUND_SECONDS %q", raw)
		}
		store.SetRoundDuration(secs)
	}

	timers := room.NewRoundTimers(room.SystemClock())
	session := room.NewSession(store, timers)

	app := fiber.New()
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/api/rooms", func(c *fiber.Ctx) error {
		return c.JSON(store.ListPublicRooms())
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/connect", websocket.New(func(c *websocket.Conn) {
		playerID := uuid.NewString()
		client := room.NewClient(playerID, c, session)

		session.Register(client)
		go client.ReadPump()
		client.WritePump()
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	logger.Info("server starting on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("server exited: %v", err)
	}
}
