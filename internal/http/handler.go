package http

import (
	"errors"
	"strconv"
	"time"

	"chessrules/internal/core"
	"chessrules/internal/processor"
	"chessrules/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	// WriteTimeout must outlast service.WaitTimeout for long-polls
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Use(rateLimiter(devMode))
	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)

	games := api.Group("/games/:gameId", requireGameID)
	games.Get("", h.GetGame)
	games.Delete("", h.DeleteGame)
	games.Post("/select", h.Select)
	games.Delete("/select", h.Deselect)
	games.Post("/moves", h.MakeMove)
	games.Get("/board", h.GetBoard)

	return app
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrCodeInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrCodeGameNotFound
		case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed:
			response.Code = core.ErrCodeInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrCodeRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps a processor error code onto an HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrCodeGameNotFound:
		return fiber.StatusNotFound
	case core.ErrCodeInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func (h *HTTPHandler) reply(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(okStatus)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation bypass detected",
		Code:  core.ErrCodeInternalError,
	})
}

// Health check endpoint with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
		"games":   h.svc.GameCount(),
	})
}

// CreateGame starts a game from the standard or a supplied setup
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationBypass(c)
	}
	return h.reply(c, h.proc.Execute(processor.NewCreateGameCommand(req)), fiber.StatusCreated)
}

// GetGame returns the game view. With wait=true and ply=N it blocks until
// the ply count differs from N, the wait times out or the game is deleted.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if c.Query("wait", "false") != "true" {
		return h.reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	ply, err := strconv.Atoi(c.Query("ply", "-1"))
	if err != nil {
		ply = -1
	}

	snap, err := h.svc.GetGame(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrCodeGameNotFound,
		})
	}

	// already behind, answer at once
	if snap.Plies != ply {
		return h.reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(ctx, gameID, ply)

	select {
	case <-notify:
		// changed, timed out or deleted
		return h.reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
	case <-ctx.Done():
		return nil
	}
}

// DeleteGame removes a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	return h.reply(c, h.proc.Execute(processor.NewDeleteGameCommand(c.Params("gameId"))), fiber.StatusNoContent)
}

// Select picks a piece of the side to move and returns its legal squares
func (h *HTTPHandler) Select(c *fiber.Ctx) error {
	req, ok := validatedBody[core.SelectRequest](c)
	if !ok {
		return validationBypass(c)
	}
	return h.reply(c, h.proc.Execute(processor.NewSelectCommand(c.Params("gameId"), req)), fiber.StatusOK)
}

// Deselect drops the current selection
func (h *HTTPHandler) Deselect(c *fiber.Ctx) error {
	return h.reply(c, h.proc.Execute(processor.NewDeselectCommand(c.Params("gameId"))), fiber.StatusOK)
}

// MakeMove moves the selected piece, or the piece on from when given
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}
	return h.reply(c, h.proc.Execute(processor.NewMakeMoveCommand(c.Params("gameId"), req)), fiber.StatusOK)
}

// GetBoard returns the placement string and an ASCII drawing of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	return h.reply(c, h.proc.Execute(processor.NewGetBoardCommand(c.Params("gameId"))), fiber.StatusOK)
}
