package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/config"
	"github.com/i-m-samarth-cs/kisan-connect/internal/logging"
	"github.com/i-m-samarth-cs/kisan-connect/internal/server"
)

// コールドスタート時に一度だけ組み立てる。
// セッションはコンテナ内メモリにあるため、ウォームな間だけ保たれる。
func newHandler() http.Handler {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	app, err := server.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build failed", zap.Error(err))
	}
	return server.Handler(app.Echo)
}

func main() {
	lambda.Start(newProxy(newHandler()))
}
