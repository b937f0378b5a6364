package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jobive/backend/internal/config"
	"github.com/jobive/backend/internal/http/handlers"
	"github.com/jobive/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	postHandler *handlers.PostHandler,
	trainingHandler *handlers.TrainingHandler,
	messageHandler *handlers.MessageHandler,
	reviewHandler *handlers.ReviewHandler,
	escrowHandler *handlers.EscrowHandler,
	paymentHandler *handlers.PaymentHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/training-categories", metaHandler.GetTrainingCategories)
	api.Get("/meta/training-levels", metaHandler.GetTrainingLevels)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Current user
	protected.Get("/me", authHandler.Me)
	protected.Put("/me", userHandler.UpdateMe)
	protected.Get("/me/trainings", trainingHandler.ListEnrolled)

	// Users
	protected.Get("/users/:id", userHandler.Get)
	protected.Get("/users/:id/reviews", userHandler.ListReviews)
	protected.Get("/users/:id/posts", postHandler.ListByAuthor)
	protected.Get("/users/:id/trainings", trainingHandler.ListByInstructor)

	// Jobs
	protected.Post("/jobs", jobHandler.Create)
	protected.Get("/jobs", jobHandler.List)
	protected.Get("/jobs/:id", jobHandler.Get)
	protected.Post("/jobs/:id/apply", jobHandler.Apply)
	protected.Post("/jobs/:id/assign", jobHandler.Assign)

	// Posts
	protected.Post("/posts", postHandler.Create)
	protected.Get("/posts", postHandler.List)
	protected.Get("/posts/:id", postHandler.Get)
	protected.Put("/posts/:id", postHandler.Update)
	protected.Delete("/posts/:id", postHandler.Delete)
	protected.Post("/posts/:id/like", postHandler.ToggleLike)
	protected.Post("/posts/:id/comments", postHandler.AddComment)
	protected.Get("/posts/:id/comments", postHandler.ListComments)
	protected.Delete("/posts/:id/comments/:commentId", postHandler.DeleteComment)

	// Trainings
	protected.Post("/trainings", trainingHandler.Create)
	protected.Get("/trainings", trainingHandler.List)
	protected.Get("/trainings/:id", trainingHandler.Get)
	protected.Put("/trainings/:id", trainingHandler.Update)
	protected.Delete("/trainings/:id", trainingHandler.Delete)
	protected.Post("/trainings/:id/purchase", trainingHandler.Purchase)
	protected.Post("/trainings/:id/rate", trainingHandler.Rate)
	protected.Post("/trainings/:id/chapters/:chapterId/complete", trainingHandler.CompleteChapter)

	// Messaging
	protected.Post("/messages", messageHandler.Send)
	protected.Get("/messages/:userId", messageHandler.Conversation)
	protected.Delete("/messages/:id", messageHandler.Delete)

	// Reviews
	protected.Post("/reviews", reviewHandler.Create)
	protected.Delete("/reviews/:id", reviewHandler.Delete)

	// Escrow
	protected.Post("/escrow", escrowHandler.Deposit)
	protected.Get("/escrow/:escrowId", escrowHandler.Get)
	protected.Put("/escrow/confirm/:escrowId", escrowHandler.Confirm)
	protected.Put("/escrow/dispute/:escrowId", escrowHandler.Dispute)

	// Payments
	protected.Post("/payment/initiate", paymentHandler.Initiate)
	protected.Get("/payment/status/:transactionId", paymentHandler.Status)
	protected.Get("/payments", paymentHandler.ListMine)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
