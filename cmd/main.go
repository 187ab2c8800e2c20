package main

import (
	"context"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	_ "airquality-service/docs"
	"airquality-service/internal/config"
	"airquality-service/internal/handlers"
	"airquality-service/internal/inference"
	"airquality-service/internal/logging"
	"airquality-service/internal/metrics"
	"airquality-service/internal/services"
	"airquality-service/internal/storage"
)

// @title Air Quality Prediction API
// @version 1.0.0
// @description API for predicting 6 air pollutants based on Latitude and Longitude using a multi-output tree ensemble regressor.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		logging.GetLogger().Infoln("No .env file found (using environment variables)")
	}

	cfg := InitConfig()
	log := InitLogging(cfg)
	FetchArtifact(cfg, log)
	handle := LoadModel(cfg, log)

	m := metrics.NewMetrics()
	predictionService := services.NewPredictionService(handle)
	h := handlers.NewPredictionHandler(predictionService, m)

	app := fiber.New()

	// Browser clients call this API from arbitrary origins. The wildcard
	// origin cannot be combined with credentials, so the origin is reflected.
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
	}))

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/predict", h.PredictAirQuality)

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Infof("Defaulting to port %s", port)
	}
	log.Infof("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.GetLogger().Fatalf("Config error: %v", err)
	}
	return cfg
}

func InitLogging(cfg *config.Config) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logging.InitLogger(level)
	return logging.GetLogger()
}

// FetchArtifact downloads the model artifact from MinIO when an endpoint is
// configured; otherwise the artifact is expected at cfg.ModelPath already.
func FetchArtifact(cfg *config.Config, log *logrus.Logger) {
	if cfg.MinioEndpoint == "" {
		return
	}
	client, err := storage.NewMinioClient(cfg)
	if err != nil {
		log.Fatalf("MinIO client initialization failed: %v", err)
	}
	if err := storage.FetchArtifact(context.Background(), client, cfg.MinioBucket, cfg.MinioObject, cfg.ModelPath); err != nil {
		log.Fatalf("Artifact download failed: %v", err)
	}
	log.Infof("Fetched model artifact %s/%s to %s", cfg.MinioBucket, cfg.MinioObject, cfg.ModelPath)
}

// LoadModel loads the regression artifact exactly once, before the server
// accepts any traffic. A missing file and a corrupt one are reported with
// distinct messages; both are fatal.
func LoadModel(cfg *config.Config, log *logrus.Logger) *inference.Handle {
	handle, err := inference.Load(cfg.ModelPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Model artifact missing: %v", err)
		}
		log.Fatalf("Model artifact unusable: %v", err)
	}
	log.Infof("Model loaded successfully: id=%s targets=%v", handle.ModelID(), handle.Targets())
	return handle
}
