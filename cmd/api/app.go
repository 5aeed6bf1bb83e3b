package main

import (
	"time"

	_ "quiz-forge/cmd/api/docs"
	"quiz-forge/internal/config"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// newApp builds the fiber app and registers every route.
func newApp(cfg *config.Config, quizService service.QuizService) *fiber.App {
	quizHandler := handler.NewQuizHandler(quizService)
	validationMiddleware := middleware.NewValidationMiddleware(cfg.Server.MaxUploadBytes)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		// multipart overhead on top of the file itself
		BodyLimit:    cfg.Server.MaxUploadBytes + 64*1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", quizHandler.Health)

	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Post("/", validationMiddleware.ValidateGenerateRequest(), quizHandler.GenerateQuiz)
	quizGroup.Get("/session", quizHandler.GetSession)
	quizGroup.Put("/session/answers/:index", validationMiddleware.ValidateAnswerIndex(), quizHandler.RecordAnswer)
	quizGroup.Post("/session/submit", quizHandler.SubmitQuiz)
	quizGroup.Delete("/generation", quizHandler.AbandonGeneration)

	return app
}
