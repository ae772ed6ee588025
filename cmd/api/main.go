// @title Quiz Builder API
// @version 1.0
// @description Generates multiple-choice quizzes with a language model and returns them as JSON text.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:5001
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "quiz-builder/cmd/api/docs"
	"quiz-builder/internal/adapter/quizgen"
	"quiz-builder/internal/config"
	"quiz-builder/internal/handler"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/middleware"
	"quiz-builder/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// newApp wires middleware and routes around an already built service.
func newApp(cfg *config.Config, quizService service.QuizService) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.AllowOrigins, AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	quizHandler := handler.NewQuizHandler(quizService)

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", quizHandler.Health)
	apiGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)

	return app
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// A missing or broken generator is not fatal: the server still answers
	// /api/health and reports modelInitialized=false.
	generator, err := quizgen.New(context.Background(), cfg.LLM, appLogger)
	if err != nil {
		appLogger.Error("Quiz generator not initialized", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		generator = nil
	}

	quizService := service.NewQuizService(generator, cfg)
	app := newApp(cfg, quizService)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.Bool("model_initialized", quizService.ModelInitialized()),
		)
		if err := app.Listen(cfg.Addr()); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
