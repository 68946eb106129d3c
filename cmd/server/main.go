package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-critique/internal/config"
	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/domain/fiber/handler"
	applog "github.com/fadilmartias/resume-critique/internal/logger"
	"github.com/fadilmartias/resume-critique/internal/model"
	"github.com/fadilmartias/resume-critique/internal/repository"
	"github.com/fadilmartias/resume-critique/internal/service"
	"github.com/fadilmartias/resume-critique/internal/usecase"
	"github.com/fadilmartias/resume-critique/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// multipart framing on top of the file itself
const bodyOverhead = 1 << 20

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		zl.Fatal("create upload dir", zap.String("dir", cfg.App.UploadDir), zap.Error(err))
	}

	db, err := ConnectDB(cfg)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}

	ctx := context.Background()
	content, err := service.NewContentGenerator(ctx, cfg.LLM)
	if err != nil {
		zl.Fatal("init content generator", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	}
	policy, err := critique.ParseScorePolicy(cfg.LLM.ScorePolicy)
	if err != nil {
		zl.Fatal("invalid score policy", zap.Error(err))
	}
	generator := critique.NewGenerator(content, critique.Config{ScorePolicy: policy}, zl)

	uc := usecase.NewCritiqueUsecase(
		repository.NewResumeRepository(db),
		repository.NewCritiqueRepository(db),
		generator,
		usecase.RetryPolicyFromConfig(cfg.LLM),
		zl,
	)
	responder := util.NewResponder(!cfg.App.IsProduction())

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.App.MaxFileSize) + bodyOverhead,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return c.Status(code).JSON(util.OrderedErrorResponse{Success: false, Message: message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.App.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return cfg.App.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.NewCritiqueHandler(uc, responder, handler.Options{
		AppName:     cfg.App.Name,
		UploadDir:   cfg.App.UploadDir,
		MaxFileSize: cfg.App.MaxFileSize,
	}, zl).RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("shutdown", zap.Error(err))
		}
	}()

	zl.Info("server running",
		zap.String("port", cfg.App.Port),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)
	if err := app.Listen(cfg.App.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
}

func ConnectDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if !cfg.App.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Resume{}, &model.Critique{}); err != nil {
		return nil, err
	}
	return db, nil
}
