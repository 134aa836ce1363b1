package controller

import (
	"election-assistant-be/internal/constant"
	"election-assistant-be/internal/dto"
	"election-assistant-be/internal/pkg/serverutils"
	"election-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, limiter fiber.Handler)
	Root(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
}

func NewChatbotController(service service.IChatbotService) IChatbotController {
	return &chatbotController{service: service}
}

// RegisterRoutes mounts the chat API. The limiter guards only POST /chat.
func (c *chatbotController) RegisterRoutes(r fiber.Router, limiter fiber.Handler) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
	r.Get("/stats", c.Stats)

	r.Post("/chat", limiter, c.Chat)
	r.Get("/chat/session", c.GetSession)
	r.Delete("/chat/session", c.ClearSession)
}

func (c *chatbotController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.BannerResponse{
		Message: constant.BannerMessage,
		Status:  constant.StatusOnline,
		Version: constant.AppVersion,
	})
}

// Chat replies with a bare {"reply": ...} body, which the chat widget
// reads directly.
func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.UserContext(), ctx.IP(), req.Message)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.ChatResponse{Reply: res.Reply})
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	res, ok := c.service.Session(ctx.IP())
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "No conversation yet"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session", res))
}

func (c *chatbotController) ClearSession(ctx *fiber.Ctx) error {
	c.service.ResetSession(ctx.UserContext(), ctx.IP())
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}

func (c *chatbotController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health())
}

func (c *chatbotController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Stats())
}
