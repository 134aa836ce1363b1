package bootstrap

import (
	"context"
	"time"

	"election-assistant-be/internal/config"
	"election-assistant-be/internal/controller"
	"election-assistant-be/internal/handler"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/internal/pkg/serverutils"
	"election-assistant-be/internal/service"
	"election-assistant-be/internal/websocket"
	"election-assistant-be/pkg/events"

	pktNats "election-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	ChatSocketHandler *handler.ChatSocketHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	RateLimiter fiber.Handler
	Logger      logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Chat pipeline
	pipeline, err := NewPipeline(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, pipeline.Close)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	publishers := events.Multi{events.NewChannelPublisher(pubSub, cfg.App.EventsTopic)}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			publishers = append(publishers, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, sysLogger)

	// 3. Redis rate limiter
	var counter serverutils.WindowCounter
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis, rate limiter fails open", map[string]interface{}{"error": err.Error()})
		}
		cancel()
		counter = rdb
		c.closers = append(c.closers, func() { rdb.Close() })
	}
	c.RateLimiter = serverutils.RateLimiter(counter, serverutils.RateLimiterConfig{
		Limit:  cfg.Chat.RateLimitPerMinute,
		Window: time.Minute,
		Prefix: "ratelimit:chat",
	}, sysLogger)

	// 4. Services
	var chatbotService service.IChatbotService
	wsHub := websocket.NewHub(func(ctx context.Context, userID, message string) (string, error) {
		res, err := chatbotService.Chat(ctx, userID, message)
		if err != nil {
			return "", err
		}
		return res.Reply, nil
	}, sysLogger)

	deps := pipeline.Deps
	deps.Publisher = publishers
	deps.Usage = consumerService
	deps.Connections = wsHub
	chatbotService = service.NewChatbotService(deps)

	// 5. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.ChatSocketHandler = handler.NewChatSocketHandler(wsHub, sysLogger)
	c.ConsumerService = consumerService
	c.WebSocketHub = wsHub

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
